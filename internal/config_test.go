package internal_test

import (
	"os"
	"time"

	"github.com/frahmantamala/user-dashboard/internal"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func validConfig() *internal.Config {
	return &internal.Config{
		Server: internal.ServerConfig{
			Port:              8080,
			AllowedOrigins:    "http://localhost:5173, *",
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
		},
		Database: internal.DatabaseConfig{Driver: "sqlite", MaxOpenConns: 1},
		Security: internal.SecurityConfig{
			AuthEnabled:          true,
			JWTAccessSecret:      "access-secret-access-secret-0123456789",
			JWTRefreshSecret:     "refresh-secret-refresh-secret-0123456789",
			AccessTokenDuration:  15 * time.Minute,
			RefreshTokenDuration: time.Hour,
			Operators: []internal.OperatorConfig{
				{Email: "admin@example.com", PasswordHash: "$2a$10$hash"},
			},
		},
		Directory: internal.DirectoryConfig{
			BaseURL:      "https://jsonplaceholder.typicode.com",
			MaxWorkers:   4,
			JobQueueSize: 64,
		},
		Observability: internal.ObservabilityConfig{
			Metrics: internal.MetricsConfig{Enabled: true, Path: "/metrics"},
			Logging: internal.LoggingConfig{Level: "info", Format: "json"},
			Tracing: internal.TracingConfig{SamplingRate: 1},
		},
	}
}

var _ = Describe("Config", func() {
	It("accepts a complete configuration", func() {
		Expect(validConfig().Validate()).To(Succeed())
	})

	It("splits allowed origins", func() {
		Expect(validConfig().Server.Origins()).To(Equal([]string{"http://localhost:5173", "*"}))
	})

	DescribeTable("rejects",
		func(mutate func(c *internal.Config), fragment string) {
			c := validConfig()
			mutate(c)
			Expect(c.Validate()).To(MatchError(ContainSubstring(fragment)))
		},
		Entry("short secrets", func(c *internal.Config) { c.Security.JWTAccessSecret = "short" }, "at least 32"),
		Entry("shared secrets", func(c *internal.Config) { c.Security.JWTRefreshSecret = c.Security.JWTAccessSecret }, "must differ"),
		Entry("operators without hash", func(c *internal.Config) {
			c.Security.Operators = []internal.OperatorConfig{{Email: "a@b.co"}}
		}, "password_hash"),
		Entry("a relative directory url", func(c *internal.Config) { c.Directory.BaseURL = "/users" }, "invalid base_url"),
		Entry("no workers", func(c *internal.Config) { c.Directory.MaxWorkers = 0 }, "max_workers"),
		Entry("an unknown driver", func(c *internal.Config) { c.Database.Driver = "mysql" }, "unsupported driver"),
		Entry("an unknown log level", func(c *internal.Config) { c.Observability.Logging.Level = "loud" }, "log level"),
		Entry("a sampling rate above one", func(c *internal.Config) { c.Observability.Tracing.SamplingRate = 2 }, "sampling_rate"),
	)

	It("skips secret checks when auth is disabled", func() {
		c := validConfig()
		c.Security = internal.SecurityConfig{AuthEnabled: false}
		Expect(c.Validate()).To(Succeed())
	})

	It("maps the database driver to a goose dialect and sql driver", func() {
		dialect, driver := (&internal.DatabaseConfig{Driver: "sqlite"}).DriverName()
		Expect([]string{dialect, driver}).To(Equal([]string{"sqlite3", "sqlite3"}))
		dialect, driver = (&internal.DatabaseConfig{Driver: "postgres"}).DriverName()
		Expect([]string{dialect, driver}).To(Equal([]string{"postgres", "pgx"}))
	})

	Describe("LoadConfigFromEnv", func() {
		setEnv := func(key, value string) {
			prev, had := os.LookupEnv(key)
			Expect(os.Setenv(key, value)).To(Succeed())
			DeferCleanup(func() {
				if had {
					os.Setenv(key, prev)
				} else {
					os.Unsetenv(key)
				}
			})
		}

		It("applies defaults and overrides", func() {
			setEnv("DIRECTORY_BASE_URL", "http://directory:8081")
			setEnv("SECURITY_OPERATOR_EMAIL", "ops@example.com")
			setEnv("SECURITY_OPERATOR_PERMISSIONS", "view_users,manage_users")
			setEnv("OBSERVABILITY_LOGGING_LEVEL", "debug")

			cfg, err := internal.LoadConfigFromEnv()
			Expect(err).NotTo(HaveOccurred())
			Expect(cfg.Server.Port).To(Equal(8080))
			Expect(cfg.Directory.BaseURL).To(Equal("http://directory:8081"))
			Expect(cfg.Directory.Timeout).To(Equal(10 * time.Second))
			Expect(cfg.Observability.Logging.Level).To(Equal("debug"))

			ops := cfg.Security.AllOperators()
			Expect(ops).To(HaveLen(1))
			Expect(ops[0].Email).To(Equal("ops@example.com"))
			Expect(ops[0].Permissions).To(Equal([]string{"view_users", "manage_users"}))
		})
	})
})
