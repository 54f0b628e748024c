// Package selftest runs a fixed sequence of assertions against the parsers and
// the acknowledgement stub. It halts on the first failure.
package selftest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/JakeFAU/sdtnames/internal/ackstub"
	"github.com/JakeFAU/sdtnames/internal/fixtures"
	"github.com/JakeFAU/sdtnames/internal/sdt"
)

// SuccessMarker is printed once every check has passed.
const SuccessMarker = "ok"

// Check is one named assertion.
type Check struct {
	Name string
	Run  func(ctx context.Context) error
}

// Run executes checks in order and returns the first failure, wrapped with
// the name of the check that produced it.
func Run(ctx context.Context, checks []Check, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	for _, c := range checks {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("selftest aborted before %q: %w", c.Name, err)
		}
		if err := c.Run(ctx); err != nil {
			return fmt.Errorf("check %q: %w", c.Name, err)
		}
		logger.Debug("check passed", zap.String("check", c.Name))
	}
	return nil
}

// Checks returns the standard sequence. An empty stubURL starts an in-process
// stub on a loopback port; otherwise the running stub at stubURL is used.
func Checks(stubURL string) []Check {
	return []Check{
		{Name: "parser services", Run: checkParserServices},
		{Name: "parser fallback", Run: checkParserFallback},
		{Name: "extract pnr", Run: checkExtractPNR},
		{Name: "ack stub", Run: stubCheck(stubURL)},
	}
}

func checkParserServices(context.Context) error {
	services, fallback := sdt.ParseServiceNamesBytes(fixtures.AnalyzeSample)
	// The fallback survives alongside numbered entries.
	if fallback != "Shopping Live" {
		return fmt.Errorf("fallback = %q, want %q", fallback, "Shopping Live")
	}
	for _, want := range []struct {
		pnr  int
		name string
	}{{801, "КИНОТВ"}, {802, "Комедия"}} {
		if !containsService(services, want.pnr, want.name) {
			return fmt.Errorf("services %s missing (%d, %q)", formatServices(services), want.pnr, want.name)
		}
	}
	return nil
}

func checkParserFallback(context.Context) error {
	services, fallback := sdt.ParseServiceNames("SDT    service:Сарафан\n")
	if fallback != "Сарафан" {
		return fmt.Errorf("fallback = %q, want %q", fallback, "Сарафан")
	}
	want := []sdt.ServiceName{{Name: "Сарафан"}}
	if !slices.EqualFunc(services, want, sameService) {
		return fmt.Errorf("services = %s, want %s", formatServices(services), formatServices(want))
	}
	return nil
}

func checkExtractPNR(context.Context) error {
	if got, ok := sdt.ExtractPNR("udp://239.0.0.1:1234#pnr=1106&cam=ntv"); !ok || got != 1106 {
		return fmt.Errorf("ExtractPNR(udp) = (%d, %t), want (1106, true)", got, ok)
	}
	if got, ok := sdt.ExtractPNR("http://example.com/stream.m3u8"); ok {
		return fmt.Errorf("ExtractPNR(http) = (%d, %t), want not found", got, ok)
	}
	return nil
}

type notification struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func stubCheck(stubURL string) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if stubURL != "" {
			return verifyStub(ctx, strings.TrimRight(stubURL, "/"))
		}

		ln, err := net.Listen("tcp", "127.0.0.1:0")
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
		server := ackstub.NewServer(ackstub.WithShutdownTimeout(time.Second))
		serveCtx, cancel := context.WithCancel(ctx)
		done := make(chan error, 1)
		go func() {
			done <- server.Serve(serveCtx, ln)
		}()

		verifyErr := verifyStub(ctx, "http://"+ln.Addr().String())
		cancel()
		return errors.Join(verifyErr, <-done)
	}
}

// verifyStub posts a name-resolved notification and reads it back.
func verifyStub(ctx context.Context, baseURL string) error {
	report := sdt.Analyze(string(fixtures.AnalyzeSample))
	name, found := report.NameFor(sdt.ExtractPNR("udp://239.0.0.1:1234#pnr=802"))
	if !found {
		return errors.New("no service name resolved for pnr 802")
	}
	payload, err := json.Marshal(notification{ChatID: "selftest", Text: name})
	if err != nil {
		return fmt.Errorf("encode notification: %w", err)
	}

	client := &http.Client{Timeout: 5 * time.Second}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/botTOKEN/sendMessage", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	status, contentType, body, err := do(client, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("ack status = %d, want 200", status)
	}
	if contentType != "application/json" {
		return fmt.Errorf("ack content type = %q, want application/json", contentType)
	}
	if body != ackstub.AckBody {
		return fmt.Errorf("ack body = %q, want %q", body, ackstub.AckBody)
	}

	req, err = http.NewRequestWithContext(ctx, http.MethodGet, baseURL+ackstub.LastPath, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	status, _, body, err = do(client, req)
	if err != nil {
		return err
	}
	if status != http.StatusOK || body != string(payload) {
		return fmt.Errorf("recorded body = (%d, %q), want (200, %q)", status, body, payload)
	}
	return nil
}

func do(client *http.Client, req *http.Request) (int, string, string, error) {
	resp, err := client.Do(req)
	if err != nil {
		return 0, "", "", fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close() //nolint:errcheck // read-only response
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", "", fmt.Errorf("read %s response: %w", req.URL.Path, err)
	}
	return resp.StatusCode, resp.Header.Get("Content-Type"), string(body), nil
}

func containsService(services []sdt.ServiceName, pnr int, name string) bool {
	return slices.ContainsFunc(services, func(s sdt.ServiceName) bool {
		return s.PNR != nil && *s.PNR == pnr && s.Name == name
	})
}

func sameService(a, b sdt.ServiceName) bool {
	if a.Name != b.Name || a.HasPNR() != b.HasPNR() {
		return false
	}
	return a.PNR == nil || *a.PNR == *b.PNR
}

func formatServices(services []sdt.ServiceName) string {
	parts := make([]string, 0, len(services))
	for _, s := range services {
		if s.PNR == nil {
			parts = append(parts, fmt.Sprintf("(none, %q)", s.Name))
			continue
		}
		parts = append(parts, fmt.Sprintf("(%d, %q)", *s.PNR, s.Name))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
