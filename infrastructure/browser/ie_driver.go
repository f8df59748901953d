package browser

import (
	"fmt"
	"io"
	"net/http"
	"os/exec"
	"strconv"
	"time"
)

const ieDriverStartTimeout = 20 * time.Second

// ieDriverService runs IEDriverServer, which takes Windows-style switches
// and serves WebDriver at the root path
type ieDriverService struct {
	cmd *exec.Cmd
}

func ieDriverArgs(port int) []string {
	return []string{"/port=" + strconv.Itoa(port)}
}

func startIEDriverService(path string, port int, output io.Writer) (*ieDriverService, error) {
	cmd := exec.Command(path, ieDriverArgs(port)...)
	cmd.Stdout = output
	cmd.Stderr = output
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	s := &ieDriverService{cmd: cmd}
	if err := waitForDriver(fmt.Sprintf("http://localhost:%d/status", port), ieDriverStartTimeout); err != nil {
		s.Stop()
		return nil, err
	}
	return s, nil
}

// Stop kills the driver process
func (s *ieDriverService) Stop() error {
	if s.cmd.Process == nil {
		return nil
	}
	if err := s.cmd.Process.Kill(); err != nil {
		return err
	}
	// killed processes always report a non-nil wait error
	_ = s.cmd.Wait()
	return nil
}

// waitForDriver polls the WebDriver status endpoint until it answers 200
func waitForDriver(statusURL string, timeout time.Duration) error {
	client := &http.Client{Timeout: time.Second}
	deadline := time.Now().Add(timeout)
	for {
		resp, err := client.Get(statusURL)
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode == http.StatusOK {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("driver did not become ready at %s within %s", statusURL, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
