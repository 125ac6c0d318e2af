package servecmder

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/papercomputeco/casegen/pkg/config"
)

var _ = Describe("Serve Command", func() {
	var ctx context.Context

	BeforeEach(func() {
		ctx = context.Background()

		orig, had := os.LookupEnv("GOOGLE_API_KEY")
		Expect(os.Unsetenv("GOOGLE_API_KEY")).To(Succeed())
		DeferCleanup(func() {
			if had {
				os.Setenv("GOOGLE_API_KEY", orig)
			}
		})
	})

	newCmd := func(args ...string) error {
		cmd := NewServeCmd()
		cmd.SetArgs(args)
		cmd.SetOut(io.Discard)
		cmd.SetErr(io.Discard)
		return cmd.ExecuteContext(ctx)
	}

	It("registers its flags", func() {
		cmd := NewServeCmd()
		Expect(cmd.Flags().Lookup("config")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("listen")).NotTo(BeNil())
		Expect(cmd.Flags().Lookup("debug")).NotTo(BeNil())
	})

	It("fails fast without an API key", func() {
		err := newCmd("--listen", "127.0.0.1:0")
		Expect(err).To(HaveOccurred())

		var cfgErr *config.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
		Expect(err).To(MatchError(config.ErrMissingAPIKey))
		Expect(err.Error()).To(ContainSubstring("GOOGLE_API_KEY"))
	})

	It("reports an unreadable config file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "broken.toml")
		Expect(os.WriteFile(path, []byte("not = [valid"), 0o600)).To(Succeed())

		err := newCmd("--config", path)
		var cfgErr *config.ConfigurationError
		Expect(errors.As(err, &cfgErr)).To(BeTrue())
	})

	It("rejects positional arguments", func() {
		Expect(newCmd("extra")).To(HaveOccurred())
	})

	It("serves until the context is canceled", func() {
		GinkgoT().Setenv("GOOGLE_API_KEY", "test-key")

		var cancel context.CancelFunc
		ctx, cancel = context.WithCancel(context.Background())
		time.AfterFunc(300*time.Millisecond, cancel)

		done := make(chan error, 1)
		go func() {
			done <- newCmd("--listen", "127.0.0.1:0")
		}()

		Eventually(done).WithTimeout(5 * time.Second).Should(Receive(BeNil()))
	})
})
