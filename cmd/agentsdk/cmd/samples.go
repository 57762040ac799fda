// Copyright 2026 The Swarm Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/ethersphere/agentsdk/pkg/info"
	"github.com/ethersphere/agentsdk/pkg/messaging"
	"github.com/ethersphere/agentsdk/pkg/sdk"
	"github.com/ethersphere/agentsdk/pkg/sqltrace"
	"github.com/ethersphere/agentsdk/pkg/tracer"
	"github.com/ethersphere/agentsdk/pkg/transport/httptrace"
	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	_ "modernc.org/sqlite"
	"resenje.org/web"
)

const shutdownTimeout = 5 * time.Second

func (c *command) initSamplesCmd() (err error) {
	cmd := &cobra.Command{
		Use:   "samples",
		Short: "Run traced sample workloads",
	}
	c.setAllFlags(cmd)
	cmd.PersistentFlags().Int(optionNameMessages, 3, "number of messages, calls or rows of a sample")

	messagingCmd := &cobra.Command{
		Use:   "messaging",
		Short: "Send messages from a producer to a consumer",
		RunE: c.runSample(func(ctx context.Context, cmd *cobra.Command, s *sdk.SDK) error {
			return messagingSample(ctx, cmd, s, c.config.GetInt(optionNameMessages))
		}),
	}

	remoteCallCmd := &cobra.Command{
		Use:   "remote-call",
		Short: "Call an HTTP service",
		RunE: c.runSample(func(ctx context.Context, cmd *cobra.Command, s *sdk.SDK) error {
			return remoteCallSample(ctx, cmd, s, c.config.GetString(optionNameVerbosity), c.config.GetInt(optionNameMessages))
		}),
	}

	databaseCmd := &cobra.Command{
		Use:   "database",
		Short: "Query a SQL database",
		RunE: c.runSample(func(ctx context.Context, cmd *cobra.Command, s *sdk.SDK) error {
			return databaseSample(ctx, cmd, s, c.config.GetString(optionNameDBDriver), c.config.GetString(optionNameDBDSN), c.config.GetInt(optionNameMessages))
		}),
	}
	databaseCmd.Flags().String(optionNameDBDriver, "sqlite", "database driver, sqlite or postgres")
	databaseCmd.Flags().String(optionNameDBDSN, ":memory:", "database data source name")

	cmd.AddCommand(messagingCmd, remoteCallCmd, databaseCmd)
	c.root.AddCommand(cmd)
	return nil
}

type sampleFunc func(ctx context.Context, cmd *cobra.Command, s *sdk.SDK) error

func (c *command) runSample(f sampleFunc) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		if len(args) > 0 {
			return cmd.Help()
		}
		if err := c.config.BindPFlags(cmd.Flags()); err != nil {
			return err
		}
		if n := c.config.GetInt(optionNameMessages); n < 0 {
			return fmt.Errorf("invalid number of %s %d", optionNameMessages, n)
		}

		var d diagnostics
		s, err := c.newSDK(cmd, &d)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := s.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("close sdk: %w", cerr)
			}
			cmd.Printf("sdk diagnostics: %s\n", &d)
		}()

		cmd.Printf("agent state: %s\n", s.CurrentState())
		return f(cmd.Context(), cmd, s)
	}
}

func messagingSample(ctx context.Context, cmd *cobra.Command, s *sdk.SDK, n int) error {
	ms := s.CreateMessagingSystemInfo(info.MessageSystemVendorKafka, "orders", info.DestinationTypeTopic, info.ChannelTypeInProcess, "")
	broker := messaging.NewBroker(n)
	defer broker.Close()

	producer := messaging.NewProducer(s.Provider(), broker, ms)
	consumer := messaging.NewConsumer(s.Provider(), broker, ms)
	processed := s.CreateIntegerCounterMetric("orders.processed", "count", "")

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		for i := 0; i < n; i++ {
			id, err := producer.Send(ctx, []byte("order "+strconv.Itoa(i)), "order-"+strconv.Itoa(i))
			if err != nil {
				return fmt.Errorf("send: %w", err)
			}
			cmd.Printf("sent message %s\n", id)
		}
		return nil
	})
	g.Go(func() error {
		for i := 0; i < n; i++ {
			err := consumer.Consume(ctx, func(ctx context.Context, msg *messaging.Message) error {
				cmd.Printf("processed message %s: %s\n", msg.ID, msg.Body)
				processed.IncreaseBy(1, "")
				return nil
			})
			if err != nil {
				return fmt.Errorf("consume: %w", err)
			}
		}
		return nil
	})
	return g.Wait()
}

func remoteCallSample(ctx context.Context, cmd *cobra.Command, s *sdk.SDK, verbosity string, n int) error {
	logger, err := newLogger(cmd, verbosity)
	if err != nil {
		return err
	}

	router := mux.NewRouter()
	router.Use(httptrace.NewHandler(s.Provider(), "greeter", &httptrace.Options{
		Logger:  logger,
		Level:   logrus.InfoLevel,
		Message: "greeter access",
	}))
	router.Handle("/greet/{name}", handlers.MethodHandler{
		http.MethodGet: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// continue the call in another goroutine, linked in process
			link := s.CreateInProcessLink(r.Context())
			greeting := make(chan string, 1)
			go func() {
				t := s.TraceInProcessLink(context.Background(), link)
				t.Start()
				defer t.End()
				greeting <- "hello " + mux.Vars(r)["name"]
			}()
			_, _ = io.WriteString(w, <-greeting)
		}),
	})

	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}
	server := &http.Server{
		Handler: web.ChainHandlers(
			handlers.RecoveryHandler(),
			web.FinalHandler(router),
		),
		ReadHeaderTimeout: shutdownTimeout,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := server.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		defer func() {
			sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = server.Shutdown(sctx)
		}()

		client := &http.Client{
			Transport: &httptrace.Transport{Provider: s.Provider(), Service: "greeter"},
			Timeout:   shutdownTimeout,
		}
		for i := 0; i < n; i++ {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+l.Addr().String()+"/greet/user"+strconv.Itoa(i), nil)
			if err != nil {
				return err
			}
			resp, err := client.Do(req)
			if err != nil {
				return fmt.Errorf("call: %w", err)
			}
			body, err := io.ReadAll(resp.Body)
			resp.Body.Close()
			if err != nil {
				return fmt.Errorf("read response: %w", err)
			}
			cmd.Printf("%s %s\n", resp.Status, body)
		}
		return nil
	})
	return g.Wait()
}

func databaseSample(ctx context.Context, cmd *cobra.Command, s *sdk.SDK, driver, dsn string, n int) error {
	d := s.CreateDatabaseInfo("sample", sqltrace.Vendor(driver), info.ChannelTypeOther, "")
	db, err := sqltrace.Open(s.Provider(), driver, dsn, d)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer db.Close()
	// an in-memory database exists per connection
	db.DB().SetMaxOpenConns(1)

	// the whole sample is one incoming call
	call := s.TraceIncomingRemoteCall(ctx, "databaseSample", "samples", "")
	call.Start()
	defer call.End()
	ctx = tracer.WithContext(ctx, call)

	latency := s.CreateIntegerStatisticsMetric("sample.query.latency", "us", "")

	for _, q := range []string{
		"CREATE TABLE IF NOT EXISTS customers (id INTEGER PRIMARY KEY, name TEXT NOT NULL)",
		"DELETE FROM customers",
	} {
		if _, err := db.ExecContext(ctx, q); err != nil {
			call.Error(err)
			return fmt.Errorf("exec: %w", err)
		}
	}
	for i := 0; i < n; i++ {
		if _, err := db.ExecContext(ctx, "INSERT INTO customers (id, name) VALUES ($1, $2)", i, "customer "+strconv.Itoa(i)); err != nil {
			call.Error(err)
			return fmt.Errorf("insert: %w", err)
		}
	}

	start := time.Now()
	rows, err := db.QueryContext(ctx, "SELECT id, name FROM customers ORDER BY id")
	if err != nil {
		call.Error(err)
		return fmt.Errorf("query: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			id   int
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			call.Error(err)
			return fmt.Errorf("scan: %w", err)
		}
		cmd.Printf("customer %d: %s\n", id, name)
	}
	if err := rows.Err(); err != nil {
		call.Error(err)
		return err
	}
	latency.AddValue(time.Since(start).Microseconds(), "")
	return nil
}
