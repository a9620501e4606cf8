// Package main is the line-oriented cashier terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/mattn/go-isatty"

	"chuipos/internal/config"
	"chuipos/internal/domain/auth"
	"chuipos/internal/domain/cart"
	"chuipos/internal/domain/catalog"
	"chuipos/internal/domain/customer"
	"chuipos/internal/domain/sale"
	"chuipos/internal/domain/status"
	"chuipos/internal/infrastructure/apiclient"
	"chuipos/internal/infrastructure/session"
	"chuipos/pkg/logger"
)

func main() {
	settingsPath := flag.String("config", config.DefaultPath(), "settings file")
	flag.Parse()

	cfg, err := config.Load(*settingsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load settings: %v\n", err)
		os.Exit(1)
	}

	// Logs go to stderr so they do not interleave with the prompt.
	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development,
		OutputPaths: []string{"stderr"},
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()
	ctx = logger.WithLogger(ctx, log)

	sessions, err := session.Open(cfg.SessionFile)
	if err != nil {
		log.Fatalw("failed to open session store", "error", err)
	}

	out := newConsole(os.Stdout)

	client, err := apiclient.New(apiclient.Config{
		BaseURL: cfg.NormalizedBaseURL(),
		Timeout: cfg.RequestTimeout,
		Tokens:  sessions,
		OnAuthFailure: func(int) {
			if err := sessions.Clear(); err != nil {
				log.Warnw("failed to clear session", "error", err)
			}
			out.Println("Session ended. Please login again.")
		},
		Logger: log,
	})
	if err != nil {
		log.Fatalw("failed to create api client", "error", err)
	}

	catalogSvc := catalog.NewService(client)
	engine := cart.NewEngine(cart.Config{
		Catalog:    catalogSvc,
		Customers:  customer.NewDirectory(client, cfg.WalkInCustomerID),
		Sales:      sale.NewService(client),
		HeldOrders: client,
		Logger:     log,
	})

	sh := &shell{
		out:      out,
		engine:   engine,
		auth:     auth.NewService(client, sessions),
		sessions: sessions,
		log:      log,
	}
	sh.searcher = catalog.NewSearcher(catalogSvc, cfg.SearchDebounce, sh.onSearchResult)

	monitor := status.NewMonitor(client, cfg.HealthInterval, func(online bool) {
		if online {
			out.Println("Server is back online.")
			return
		}
		out.Println("Server is offline.")
	}, log)
	sh.monitor = monitor

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		monitor.Run(ctx)
	}()

	if sessions.IsLoggedIn() {
		sh.afterLogin(ctx)
	} else {
		out.Println("Not logged in. Use: login <username> <pin>")
	}

	sh.run(ctx, os.Stdin, isatty.IsTerminal(os.Stdin.Fd()))

	cancel()
	sh.searcher.Cancel()
	sh.searcher.Wait()
	wg.Wait()
}
