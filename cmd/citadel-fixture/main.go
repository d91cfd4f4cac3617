package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fulldump/box"
	"github.com/fulldump/goconfig"
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/five82/citadel/internal/fixture"
)

var VERSION = "dev"

func main() {
	c := fixture.DefaultConfig()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowConfig {
		_ = json.MarshalWrite(os.Stdout, c, jsontext.Multiline(true))
		fmt.Println()
	}

	catalog, err := fixture.LoadCatalogFile(c.Dataset)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(1)
	}

	b := fixture.Build(catalog, c.Options())
	b.WithInterceptors(
		fixture.AccessLog(log.New(os.Stdout, "ACCESS: ", 0)),
		box.RecoverFromPanic,
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(1)
	}
	log.Printf("serving %d characters on http://%s/api", catalog.Len(), ln.Addr())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = s.Shutdown(context.Background())
	}()

	if err := s.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Println("ERROR:", err.Error())
		os.Exit(1)
	}
}
