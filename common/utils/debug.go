package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
	"time"
)

type Context map[string]interface{}

type Message struct {
	Time    string  `json:"time"`
	Service string  `json:"service"`
	Message string  `json:"message"`
	Context Context `json:"context"`
}

var debugmutex sync.Mutex
var debugout io.Writer = os.Stdout

// SetDebugOutput redirects Debug lines; pass io.Discard to silence them.
func SetDebugOutput(w io.Writer) {
	debugmutex.Lock()
	debugout = w
	debugmutex.Unlock()
}

func Debug(service string, message string) {
	context := make(Context, 0)

	if hostname, err := os.Hostname(); err == nil {
		context["hostname"] = hostname
	}

	messageStruct := Message{
		Time:    time.Now().Format(time.RFC3339),
		Service: service,
		Message: message,
		Context: context,
	}

	data, _ := json.Marshal(messageStruct)

	debugmutex.Lock()
	fmt.Fprintln(debugout, string(data))
	debugmutex.Unlock()
}
