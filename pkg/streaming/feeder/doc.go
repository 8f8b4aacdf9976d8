/*
Package feeder pumps bytes from an io.Reader into a payload stream while
honoring the stream's backpressure protocol.

The feeder is the producer collaborator of pkg/streaming/payload: before
every source read it calls NeedRead, pausing while the consumer lags and
stopping for good once the consumer drops the stream. An optional rate
limiter bounds the read bandwidth.

	sender, body := payload.New(false)

	f, err := feeder.NewWithConfig(conn, sender, feeder.Config{
		ReadSize: 16 * 1024,
		Limiter:  rate.NewLimiter(1<<20, 16*1024), // 1MB/s
	})
	if err != nil {
		return err
	}

	go f.Run(ctx)

	reader := payload.NewReader(body)
	defer reader.Close()
	io.Copy(dst, reader)

Run returns nil on a clean source end (EOF is fed to the stream) and when
the consumer cancels by closing its handles; a source error is recorded on
the stream and returned.
*/
package feeder
