package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"source.hodakov.me/hdkv/avweb/internal/application"
	"source.hodakov.me/hdkv/avweb/internal/domains"
	"source.hodakov.me/hdkv/avweb/internal/domains/converter"
	"source.hodakov.me/hdkv/avweb/internal/domains/converter/dto"
	transcoderDTO "source.hodakov.me/hdkv/avweb/internal/domains/transcoder/dto"
)

var errConversionsFailed = errors.New("some conversions failed")

type conversionReport struct {
	input  string
	output string
	result *transcoderDTO.Result
}

func newConvertCommand(flags *globalFlags) *cobra.Command {
	var (
		outputPath  string
		extraArgs   []string
		metricsAddr string
	)

	cmd := &cobra.Command{
		Use:   "convert <kind> <input>...",
		Short: "Convert one or more files to mp4, ogg, webm, mp3 or m4a",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := converter.ParseKind(args[0])
			if err != nil {
				return err
			}

			inputs := args[1:]
			if outputPath != "" && len(inputs) > 1 {
				return errors.New("--output can only be used with a single input")
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			stopSignals := cancelOnSignal(cancel)
			defer stopSignals()

			app, err := bootstrap(ctx, flags)
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				shutdown := serveMetrics(app, metricsAddr)
				defer shutdown()
			}

			reports, err := runConversions(app, kind, inputs, &dto.Options{
				ExtraArgs:  extraArgs,
				OutputPath: outputPath,
			})
			if err != nil {
				return err
			}

			return printReports(cmd, reports)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path (single input only)")
	cmd.Flags().StringArrayVarP(&extraArgs, "extra", "x", nil, "Extra transcoder argument appended after the preset (repeatable)")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "Serve Prometheus metrics on this address while converting")

	return cmd
}

// runConversions queues one job per input and waits for all of them.
func runConversions(
	app *application.App, kind dto.Kind, inputs []string, template *dto.Options,
) ([]*conversionReport, error) {
	conv, ok := app.RetrieveDomain(domains.ConverterName).(domains.Converter)
	if !ok {
		return nil, errors.New("converter domain is not registered")
	}

	queue, ok := app.RetrieveDomain(domains.QueueName).(domains.Queue)
	if !ok {
		return nil, errors.New("queue domain is not registered")
	}

	var mutex sync.Mutex

	reports := make([]*conversionReport, 0, len(inputs))

	for _, input := range inputs {
		report := &conversionReport{
			input:  input,
			output: template.OutputPath,
		}
		if report.output == "" {
			report.output = converter.OutputPath(kind, input)
		}

		_, err := conv.Convert(kind, input, &dto.Options{
			ExtraArgs:  template.ExtraArgs,
			OutputPath: template.OutputPath,
			OnComplete: func(result *transcoderDTO.Result) {
				mutex.Lock()
				defer mutex.Unlock()

				report.result = result
			},
		})
		if err != nil {
			return nil, err
		}

		reports = append(reports, report)
	}

	err := queue.Wait(app.Context())
	if err != nil {
		return nil, err
	}

	return reports, nil
}

func printReports(cmd *cobra.Command, reports []*conversionReport) error {
	rows := make([][]string, 0, len(reports))
	failed := 0

	for _, report := range reports {
		status := "ok"
		exitCode := "-"
		duration := "-"

		switch result := report.result; {
		case result == nil:
			status = "not run"
			failed++
		case result.Err != nil:
			status = result.Err.Error()
			failed++
		default:
			exitCode = strconv.Itoa(result.ExitCode)
			duration = result.Duration.Round(time.Millisecond).String()

			if !result.Succeeded() {
				status = lastLine(result.Stderr)
				failed++
			}
		}

		rows = append(rows, []string{report.input, report.output, exitCode, duration, status})
	}

	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"Input", "Output", "Exit", "Took", "Status"},
		rows,
		2, 3,
	))

	if failed > 0 {
		return fmt.Errorf("%w: %d of %d", errConversionsFailed, failed, len(reports))
	}

	return nil
}

func lastLine(output string) string {
	output = strings.TrimSpace(output)
	if output == "" {
		return "failed"
	}

	if idx := strings.LastIndexAny(output, "\r\n"); idx >= 0 {
		return strings.TrimSpace(output[idx+1:])
	}

	return output
}

// cancelOnSignal cancels on SIGINT or SIGTERM, which kills running
// transcoder processes.
func cancelOnSignal(cancel context.CancelFunc) func() {
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	stop := make(chan struct{})

	go func() {
		select {
		case signalThing := <-interrupt:
			logrus.WithField("signal", signalThing.String()).
				Info("Got terminating signal, shutting down...")

			cancel()
		case <-stop:
		}
	}()

	return func() {
		signal.Stop(interrupt)
		close(stop)
	}
}

func serveMetrics(app *application.App, addr string) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		app.Logger().WithField("address", addr).Info("Serving metrics")

		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			app.Logger().WithError(err).Error("Metrics server stopped")
		}
	}()

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		_ = server.Shutdown(ctx)
	}
}
