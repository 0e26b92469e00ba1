package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/api"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/repo/eventable"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/log"
	"github.com/urandom/feedkeeper/parser/processor"
)

var (
	serverDevelPort int
)

func runServer(config config.Config, args []string) error {
	log := initLog(config.Log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	base, err := initService(config, log)
	if err != nil {
		return err
	}
	defer base.Close()

	service := eventable.NewService(ctx, base, log)
	statuses := status.NewManager(service.StatusRepo(), config.Status, log)
	client := download.NewClient(config.Timeout)

	downloader := feed.NewDownloader(client, config.Finder, config.Download, log)
	finder := feed.NewFinder(downloader, client, config.Download, log)

	refresher := feed.NewRefresher(
		ctx, service, statuses, client, config.Download, log,
		processor.NewCleanup(log), processor.NewAbsoluteURL(log),
	)
	scheduler := feed.NewScheduler(refresher, statuses, config.Refresh, log)

	go scheduler.Start(ctx)
	go handleSuspend(ctx, service, refresher, log)

	mux := chi.NewRouter()
	mux.Mount("/api", api.Mux(ctx, service, statuses, finder, scheduler, service, config.Server, log))

	server := makeHTTPServer(mux)

	go func() {
		<-ctx.Done()

		shutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdown); err != nil {
			log.Printf("Error shutting down server: %+v", err)
		}
	}()

	if serverDevelPort > 0 {
		server.Addr = fmt.Sprintf(":%d", serverDevelPort)

		log.Infof("Starting server on address %s", server.Addr)
		if err = server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return errors.Wrap(err, "starting devel server")
		}

		return nil
	}

	server.Addr = fmt.Sprintf("%s:%d", config.Server.Address, config.Server.Port)
	log.Infof("Starting server on address %s", server.Addr)

	if config.Server.CertFile != "" && config.Server.KeyFile != "" {
		err = server.ListenAndServeTLS(config.Server.CertFile, config.Server.KeyFile)
	} else {
		err = server.ListenAndServe()
	}

	if err != nil && err != http.ErrServerClosed {
		return errors.Wrap(err, "starting server")
	}

	return nil
}

// handleSuspend suspends the storage and every download on SIGUSR1, and
// resumes them on SIGUSR2.
func handleSuspend(ctx context.Context, service repo.Service, refresher *feed.Refresher, log log.Log) {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, syscall.SIGUSR1, syscall.SIGUSR2)
	defer signal.Stop(signals)

	for {
		select {
		case sig := <-signals:
			switch sig {
			case syscall.SIGUSR1:
				log.Infoln("Suspending storage and downloads")
				refresher.Suspend()
				service.Suspend()
			case syscall.SIGUSR2:
				log.Infoln("Resuming storage and downloads")
				service.Resume()
				refresher.Resume()
			}
		case <-ctx.Done():
			return
		}
	}
}

func makeHTTPServer(mux http.Handler) *http.Server {
	return &http.Server{
		ReadTimeout: 5 * time.Second,
		IdleTimeout: 120 * time.Second,
		Handler:     mux,
	}
}

func init() {
	flags := flag.NewFlagSet("server", flag.ExitOnError)
	flags.IntVar(&serverDevelPort, "devel-port", 0, "when specified, runs an http server on that port")

	commands = append(commands, Command{
		Name:  "server",
		Desc:  "feed refresh and read state server",
		Flags: flags,
		Run:   runServer,
	})
}
