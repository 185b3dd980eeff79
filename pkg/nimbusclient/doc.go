// Package nimbusclient provides the primary entry point for constructing a
// Nimbus Cloud API client that implements the nimbus.Client interface.
//
// It layers configuration, HTTP transport, authentication, and the optional
// read-through response cache on top of the service interfaces and types
// defined in the nimbus package. Most applications should import
// nimbusclient to build a client, then use the returned nimbus.Client to
// access the service clients: Queues(), Functions(), Query().
//
// Quick start
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/nimbus-cloud/nimbus-client/pkg/nimbus"
//	  "github.com/nimbus-cloud/nimbus-client/pkg/nimbusclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//
//	  cli, err := nimbusclient.New(&nimbus.Config{
//	    Endpoint: "https://api.eu-central.nimbus.example",
//	    APIToken: "nbt_...",
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  out, err := cli.Queues().CreateQueue(ctx, &nimbus.CreateQueueInput{
//	    QueueName: nimbus.String("orders.fifo"),
//	  })
//	  if err != nil {
//	    log.Fatal(err)
//	  }
//
//	  log.Println(out.QueueURL)
//	}
//
// When Config.APIToken is empty the client falls back to the
// NIMBUS_API_TOKEN environment variable.
package nimbusclient
