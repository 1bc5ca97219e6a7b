// Copyright: This file is part of implindex, released under https://github.com/korrel8r/implindex/blob/main/LICENSE

package main

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/korrel8r/implindex/internal/pkg/logging"
	"github.com/korrel8r/implindex/internal/pkg/must"
	"github.com/korrel8r/implindex/pkg/build"
	"github.com/korrel8r/implindex/pkg/mcp"
	"github.com/korrel8r/implindex/pkg/rest"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var webCmd = &cobra.Command{
	Use:   "web [flags]",
	Short: "Load sources and serve the index over HTTP.",
	Long: `Load sources and serve the index over HTTP.
Serves the REST API under ` + rest.BasePath + `, Prometheus metrics at /metrics and profiling at /debug/pprof.
With --mcp also serves the MCP streamable HTTP protocol at ` + mcp.StreamablePath + `.`,
	Args: cobra.NoArgs,
	Run: func(_ *cobra.Command, args []string) {
		if *httpFlag == "" && *httpsFlag == "" {
			*httpFlag = ":8080" // Default if no port specified.
		}
		var s http.Server
		switch {
		case *httpFlag != "" && *httpsFlag != "":
			panic(fmt.Errorf("only one of --http or --https may be present"))
		case *httpFlag != "":
			s.Addr = *httpFlag
			if *certFlag != "" || *keyFlag != "" {
				panic(fmt.Errorf("--cert and --key not allowed with --http"))
			}
		case *httpsFlag != "":
			s.Addr = *httpsFlag
			if *certFlag == "" || *keyFlag == "" {
				panic(fmt.Errorf("--cert and --key are required for https"))
			}
		}

		l := load()
		gin.DefaultWriter = logging.LogWriter()
		gin.SetMode(gin.ReleaseMode)
		gin.DisableConsoleColor()
		router := gin.New()
		router.Use(gin.Recovery())
		must.Must1(rest.New(l.Registry, l.Exclude, router))
		rest.WebProfile(router)
		router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(metricsRegistry, promhttp.HandlerOpts{})))
		if *mcpFlag {
			router.Any(mcp.StreamablePath, gin.WrapH(mcp.NewServer(l.Registry, l.Exclude).HTTPHandler()))
		}
		s.Handler = router

		if *httpFlag != "" {
			log.Info("listening for http", "addr", s.Addr, "version", build.Version, "capabilities", l.Index().Len())
			must.Must(s.ListenAndServe())
		} else {
			log.Info("listening for https", "addr", s.Addr, "version", build.Version, "capabilities", l.Index().Len())
			must.Must(s.ListenAndServeTLS(*certFlag, *keyFlag))
		}
	},
}

var (
	httpFlag, httpsFlag *string
	certFlag, keyFlag   *string
	mcpFlag             *bool
)

func init() {
	rootCmd.AddCommand(webCmd)
	httpFlag = webCmd.Flags().String("http", "", "host:port address for insecure http listener")
	httpsFlag = webCmd.Flags().String("https", "", "host:port address for secure https listener")
	certFlag = webCmd.Flags().String("cert", "", "TLS certificate file (PEM format) for https")
	keyFlag = webCmd.Flags().String("key", "", "Private key (PEM format) for https")
	mcpFlag = webCmd.Flags().Bool("mcp", false, "Serve the MCP streamable HTTP protocol at "+mcp.StreamablePath)
}
