// Package nimbus defines the public surface of the Nimbus Cloud client:
// per-operation input and output types for the Queues, Functions, and Query
// services, the error taxonomy, and the transport-level request and response
// descriptors that connect them.
//
// Every input type serializes itself with Request(), a pure function of the
// input's current field values: required fields are checked there (not at
// construction), enum-constrained values are checked against their closed
// sets, absent optional fields are omitted from the wire body, and an
// explicitly-set empty map is sent as {}. Outputs hydrate once from a
// response body and are not mutated afterwards. Service errors decode into
// exactly one typed exception, selected by the service's error code, with a
// status-class fallback for codes this client does not know.
//
// Construct clients with the nimbusclient package:
//
//	client, err := nimbusclient.New(&nimbus.Config{
//		Endpoint: "https://api.eu-central.nimbus.example",
//		APIToken: os.Getenv("NIMBUS_API_TOKEN"),
//	})
//	out, err := client.Queues().CreateQueue(ctx, &nimbus.CreateQueueInput{
//		QueueName: nimbus.String("orders.fifo"),
//	})
package nimbus
