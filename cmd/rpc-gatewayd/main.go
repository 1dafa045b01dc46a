package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/brave-experiments/eth-json-rpc-infura/gateway"
	"github.com/brave-experiments/eth-json-rpc-infura/logutils"
	"github.com/brave-experiments/eth-json-rpc-infura/params"
	"github.com/brave-experiments/eth-json-rpc-infura/rpc"
	"github.com/brave-experiments/eth-json-rpc-infura/rpcstats"
)

const (
	envProjectID     = "INFURA_PROJECT_ID"
	envProjectSecret = "INFURA_PROJECT_SECRET"

	shutdownTimeout = 5 * time.Second
)

// envCredentials reads the gateway credentials from the environment on every
// lookup, so a late-provisioned project id is picked up without a restart.
type envCredentials struct{}

func (envCredentials) ProjectID(ctx context.Context) (string, error) {
	return os.Getenv(envProjectID), nil
}

func (envCredentials) SecretKey(ctx context.Context) (string, error) {
	return os.Getenv(envProjectSecret), nil
}

func main() {
	app := &cli.App{
		Name:  "rpc-gatewayd",
		Usage: "forward single JSON-RPC requests to the remote HTTP gateway",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "network",
				Value: params.DefaultNetwork,
				Usage: "gateway network name",
			},
			&cli.IntFlag{
				Name:  "max-attempts",
				Value: params.DefaultMaxAttempts,
				Usage: "retry attempt budget per request",
			},
			&cli.StringFlag{
				Name:  "source",
				Usage: "attribution label sent to the gateway",
			},
			&cli.BoolFlag{
				Name:  "dev",
				Usage: "use the staging gateway host",
			},
			&cli.StringFlag{
				Name:  "listen",
				Value: ":8545",
				Usage: "HTTP listen address",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "info",
				Usage: "log level (debug, info, warn, error)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Usage: "write logs to a rotated file instead of stderr",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(cCtx *cli.Context) error {
	var fileOpts *logutils.FileOptions
	if name := cCtx.String("log-file"); name != "" {
		fileOpts = &logutils.FileOptions{
			Filename:   name,
			MaxSize:    100,
			MaxBackups: 3,
			Compress:   true,
		}
	}
	logger, err := logutils.NewZapLogger(cCtx.String("log-level"), fileOpts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	cfg := params.GatewayConfig{
		Network:     cCtx.String("network"),
		MaxAttempts: cCtx.Int("max-attempts"),
		Source:      cCtx.String("source"),
		DevMode:     cCtx.Bool("dev"),
	}
	middleware, err := gateway.NewMiddleware(cfg, envCredentials{}, logger)
	if err != nil {
		return err
	}
	client := rpc.NewClient(middleware, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("/", handleRPC(client, logger))
	mux.HandleFunc("/health", handleHealth)
	mux.HandleFunc("/stats", handleStats)

	server := &http.Server{Addr: cCtx.String("listen"), Handler: mux}

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig

		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("listening",
		zap.String("addr", server.Addr),
		zap.String("network", cfg.Network),
		zap.Bool("dev", cfg.DevMode))
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func handleRPC(client *rpc.Client, logger *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "only POST is accepted", http.StatusMethodNotAllowed)
			return
		}

		var req rpc.Request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "malformed JSON-RPC request", http.StatusBadRequest)
			return
		}
		if req.Origin == "" {
			req.Origin = r.Header.Get("Origin")
		}

		resp, err := client.CallContext(r.Context(), &req)
		if err != nil {
			logger.Error("request failed", zap.String("method", req.Method), zap.Error(err))
			http.Error(w, err.Error(), http.StatusBadGateway)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleStats(w http.ResponseWriter, r *http.Request) {
	total, perMethod := rpcstats.GetStats()

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"total":     total,
		"perMethod": perMethod,
	})
}
