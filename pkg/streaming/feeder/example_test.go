package feeder_test

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/vnykmshr/bodyflow/pkg/streaming/feeder"
	"github.com/vnykmshr/bodyflow/pkg/streaming/payload"
)

// Example pumps an io.Reader into a payload stream and drains it.
func Example() {
	sender, body := payload.New(false)

	f, err := feeder.New(strings.NewReader("request body"), sender)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	go f.Run(context.Background())

	r := payload.NewReader(body)
	defer r.Close()

	data, _ := io.ReadAll(r)
	fmt.Println(string(data))
	// Output: request body
}
