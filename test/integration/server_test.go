package integration

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
)

// fakeNimbus is an in-memory stand-in for the Nimbus API covering the slices
// of the queue, function and query services the workflow tests touch.
type fakeNimbus struct {
	mu        sync.Mutex
	queues    map[string]*fakeQueue
	functions map[string]*fakeFunction
	queries   map[string]*fakeQuery
	nextID    int
}

type fakeQueue struct {
	name       string
	url        string
	attributes map[string]string
	tags       map[string]string
	messages   []fakeMessage
}

type fakeMessage struct {
	id      string
	receipt string
	body    string
}

type fakeFunction struct {
	config map[string]interface{}
	tags   map[string]string
}

type fakeQuery struct {
	queryString string
	state       string
	polls       int
}

func newFakeNimbus() *fakeNimbus {
	return &fakeNimbus{
		queues:    map[string]*fakeQueue{},
		functions: map[string]*fakeFunction{},
		queries:   map[string]*fakeQuery{},
	}
}

func (f *fakeNimbus) id(prefix string) string {
	f.nextID++

	return fmt.Sprintf("%s-%d", prefix, f.nextID)
}

func (f *fakeNimbus) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if target := r.Header.Get("X-Nimbus-Target"); target != "" && r.URL.Path == "/" {
		f.handleTarget(w, r, target)

		return
	}

	if strings.HasPrefix(r.URL.Path, "/2025-03-18/functions") {
		f.handleFunctions(w, r)

		return
	}

	http.NotFound(w, r)
}

// serviceError writes a JSON-target error with the code in the body.
func serviceError(w http.ResponseWriter, status int, code, message string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"Type": code, "Message": message})
}

// restError writes a REST error with the code in the discriminator header.
func restError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("X-Nimbus-Error-Type", code)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"Message": message})
}

func respond(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/x-nimbus-json-1.0")
	_ = json.NewEncoder(w).Encode(v)
}

func decode(r *http.Request) map[string]interface{} {
	body := map[string]interface{}{}
	_ = json.NewDecoder(r.Body).Decode(&body)

	return body
}

func str(body map[string]interface{}, key string) string {
	s, _ := body[key].(string)

	return s
}

func (f *fakeNimbus) handleTarget(w http.ResponseWriter, r *http.Request, target string) {
	body := decode(r)

	switch target {
	case "NimbusQueues.CreateQueue":
		name := str(body, "QueueName")
		queue := &fakeQueue{
			name:       name,
			url:        "https://queues.nimbus.example/" + name,
			attributes: map[string]string{},
			tags:       map[string]string{},
		}

		if attrs, ok := body["Attributes"].(map[string]interface{}); ok {
			for k, v := range attrs {
				queue.attributes[k], _ = v.(string)
			}
		}

		f.queues[queue.url] = queue
		respond(w, map[string]string{"QueueUrl": queue.url})
	case "NimbusQueues.GetQueueUrl":
		for _, queue := range f.queues {
			if queue.name == str(body, "QueueName") {
				respond(w, map[string]string{"QueueUrl": queue.url})

				return
			}
		}

		serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")
	case "NimbusQueues.GetQueueAttributes":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		respond(w, map[string]interface{}{"Attributes": queue.attributes})
	case "NimbusQueues.SetQueueAttributes":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		if attrs, ok := body["Attributes"].(map[string]interface{}); ok {
			for k, v := range attrs {
				queue.attributes[k], _ = v.(string)
			}
		}

		respond(w, map[string]string{})
	case "NimbusQueues.TagQueue":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		if tags, ok := body["Tags"].(map[string]interface{}); ok {
			for k, v := range tags {
				queue.tags[k], _ = v.(string)
			}
		}

		respond(w, map[string]string{})
	case "NimbusQueues.ListQueueTags":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		respond(w, map[string]interface{}{"Tags": queue.tags})
	case "NimbusQueues.ListQueues":
		urls := []string{}
		for url := range f.queues {
			urls = append(urls, url)
		}

		respond(w, map[string]interface{}{"QueueUrls": urls})
	case "NimbusQueues.SendMessage":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		msg := fakeMessage{id: f.id("msg"), receipt: f.id("rh"), body: str(body, "MessageBody")}
		queue.messages = append(queue.messages, msg)
		respond(w, map[string]string{"MessageId": msg.id})
	case "NimbusQueues.ReceiveMessage":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		messages := []map[string]string{}
		for _, msg := range queue.messages {
			messages = append(messages, map[string]string{
				"MessageId":     msg.id,
				"ReceiptHandle": msg.receipt,
				"Body":          msg.body,
			})
		}

		respond(w, map[string]interface{}{"Messages": messages})
	case "NimbusQueues.DeleteMessage":
		queue, ok := f.queues[str(body, "QueueUrl")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		receipt := str(body, "ReceiptHandle")
		kept := queue.messages[:0]

		for _, msg := range queue.messages {
			if msg.receipt != receipt {
				kept = append(kept, msg)
			}
		}

		if len(kept) == len(queue.messages) {
			serviceError(w, http.StatusBadRequest, "ReceiptHandleIsInvalid", "unknown receipt handle")

			return
		}

		queue.messages = kept
		respond(w, map[string]string{})
	case "NimbusQueues.DeleteQueue":
		if _, ok := f.queues[str(body, "QueueUrl")]; !ok {
			serviceError(w, http.StatusBadRequest, "QueueDoesNotExist", "no such queue")

			return
		}

		delete(f.queues, str(body, "QueueUrl"))
		respond(w, map[string]string{})
	case "NimbusQuery.StartQueryExecution":
		id := f.id("qe")
		f.queries[id] = &fakeQuery{queryString: str(body, "QueryString"), state: "RUNNING"}
		respond(w, map[string]string{"QueryExecutionId": id})
	case "NimbusQuery.GetQueryExecution":
		query, ok := f.queries[str(body, "QueryExecutionId")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "InvalidRequestException", "no such execution")

			return
		}

		// The first poll sees the query still running; it finishes after that.
		query.polls++
		if query.state == "RUNNING" && query.polls > 1 {
			query.state = "SUCCEEDED"
		}

		respond(w, map[string]interface{}{
			"QueryExecution": map[string]interface{}{
				"QueryExecutionId":   str(body, "QueryExecutionId"),
				"Query":              query.queryString,
				"State":              query.state,
				"SubmissionDateTime": 1742290200,
			},
		})
	case "NimbusQuery.GetQueryResults":
		query, ok := f.queries[str(body, "QueryExecutionId")]
		if !ok || query.state != "SUCCEEDED" {
			serviceError(w, http.StatusBadRequest, "InvalidRequestException", "query has no results")

			return
		}

		respond(w, map[string]interface{}{
			"ResultSet": map[string]interface{}{
				"ColumnInfo": []map[string]string{{"Name": "total", "Type": "bigint"}},
				"Rows":       []map[string]interface{}{{"Data": []map[string]string{{"VarCharValue": "42"}}}},
			},
		})
	case "NimbusQuery.StopQueryExecution":
		query, ok := f.queries[str(body, "QueryExecutionId")]
		if !ok {
			serviceError(w, http.StatusBadRequest, "InvalidRequestException", "no such execution")

			return
		}

		query.state = "CANCELLED"
		respond(w, map[string]string{})
	case "NimbusQuery.ListQueryExecutions":
		ids := []string{}
		for id := range f.queries {
			ids = append(ids, id)
		}

		respond(w, map[string]interface{}{"QueryExecutionIds": ids})
	default:
		serviceError(w, http.StatusBadRequest, "InvalidRequestException", "unknown target "+target)
	}
}

func (f *fakeNimbus) handleFunctions(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/2025-03-18/functions")
	rest = strings.TrimPrefix(rest, "/")

	switch {
	case rest == "" && r.Method == http.MethodPost:
		body := decode(r)
		name := str(body, "FunctionName")
		config := map[string]interface{}{
			"FunctionId":   f.id("fn"),
			"FunctionName": name,
			"Runtime":      body["Runtime"],
			"Handler":      body["Handler"],
			"State":        "Pending",
			"Version":      "1",
			"LastModified": "2025-03-18T09:30:00Z",
		}

		for _, key := range []string{"Description", "MemorySize", "Timeout", "Environment"} {
			if v, ok := body[key]; ok {
				config[key] = v
			}
		}

		fn := &fakeFunction{config: config, tags: map[string]string{}}
		if tags, ok := body["Tags"].(map[string]interface{}); ok {
			for k, v := range tags {
				fn.tags[k], _ = v.(string)
			}
		}

		f.functions[name] = fn
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(config)
	case rest == "" && r.Method == http.MethodGet:
		functions := []map[string]interface{}{}
		for _, fn := range f.functions {
			functions = append(functions, fn.config)
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{"Functions": functions})
	case strings.HasSuffix(rest, "/invocations") && r.Method == http.MethodPost:
		name := strings.TrimSuffix(rest, "/invocations")
		if _, ok := f.functions[name]; !ok {
			restError(w, http.StatusNotFound, "ResourceNotFoundException", "no such function")

			return
		}

		if r.Header.Get("X-Nimbus-Invocation-Type") == "Event" {
			w.WriteHeader(http.StatusAccepted)

			return
		}

		// Synchronous invocations echo the payload back.
		payload, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	case strings.HasSuffix(rest, "/configuration") && r.Method == http.MethodPut:
		name := strings.TrimSuffix(rest, "/configuration")

		fn, ok := f.functions[name]
		if !ok {
			restError(w, http.StatusNotFound, "ResourceNotFoundException", "no such function")

			return
		}

		for key, value := range decode(r) {
			fn.config[key] = value
		}

		_ = json.NewEncoder(w).Encode(fn.config)
	case r.Method == http.MethodGet:
		fn, ok := f.functions[rest]
		if !ok {
			restError(w, http.StatusNotFound, "ResourceNotFoundException", "no such function")

			return
		}

		// A freshly created function turns active by the time anyone reads it.
		if fn.config["State"] == "Pending" {
			fn.config["State"] = "Active"
		}

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"Configuration": fn.config,
			"Tags":          fn.tags,
		})
	case r.Method == http.MethodDelete:
		if _, ok := f.functions[rest]; !ok {
			restError(w, http.StatusNotFound, "ResourceNotFoundException", "no such function")

			return
		}

		delete(f.functions, rest)
		w.WriteHeader(http.StatusNoContent)
	default:
		restError(w, http.StatusBadRequest, "InvalidParameterValueException", "unsupported request")
	}
}
