package payload_test

import (
	"fmt"
	"io"

	"github.com/vnykmshr/bodyflow/pkg/streaming/payload"
)

// Example demonstrates the basic poll/feed cycle.
func Example() {
	sender, body := payload.New(false)

	sender.FeedData([]byte("hello "))
	sender.FeedData([]byte("world"))
	sender.FeedEOF()

	for {
		chunk, state, err := body.PollNext(nil)
		if err != nil {
			fmt.Println("error:", err)
			return
		}
		if state == payload.PollEnd {
			break
		}
		fmt.Print(string(chunk))
	}
	fmt.Println()
	// Output: hello world
}

// Example_backpressure shows the producer pausing once the buffer fills.
func Example_backpressure() {
	sender, body, _ := payload.NewWithConfig(payload.Config{Capacity: 8})

	sender.FeedData([]byte("12345678"))
	fmt.Println("after fill:", sender.NeedRead(nil))

	body.PollNext(nil)
	fmt.Println("after drain:", sender.NeedRead(nil))
	// Output:
	// after fill: pause
	// after drain: read
}

// Example_reader adapts a payload to a conventional io.Reader.
func Example_reader() {
	sender, body := payload.New(false)
	r := payload.NewReader(body)
	defer r.Close()

	sender.FeedData([]byte("streamed body"))
	sender.FeedEOF()

	data, _ := io.ReadAll(r)
	fmt.Println(string(data))
	// Output: streamed body
}
