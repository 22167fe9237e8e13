package gateway_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"time"

	"github.com/frahmantamala/user-dashboard/internal"
	"github.com/frahmantamala/user-dashboard/internal/core/datamodel/directoryuser"
	"github.com/frahmantamala/user-dashboard/internal/gateway"
	"github.com/frahmantamala/user-dashboard/internal/record"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type capturedRequest struct {
	Method string
	Path   string
	APIKey string
	Body   map[string]any
}

var _ = Describe("Client", func() {
	var (
		server   *httptest.Server
		client   *gateway.Client
		captured []capturedRequest
		status   int
		reply    any
		draft    record.Draft
	)

	BeforeEach(func() {
		captured = nil
		status = http.StatusOK
		reply = nil
		draft = record.Draft{FirstName: "Ann", LastName: "Lee", Email: "ann@x.com", Department: "HR"}

		server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req := capturedRequest{Method: r.Method, Path: r.URL.Path, APIKey: r.Header.Get("X-API-Key")}
			if raw, _ := io.ReadAll(r.Body); len(raw) > 0 {
				Expect(json.Unmarshal(raw, &req.Body)).To(Succeed())
			}
			captured = append(captured, req)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(status)
			if reply != nil {
				_ = json.NewEncoder(w).Encode(reply)
			} else {
				_, _ = w.Write([]byte("{}"))
			}
		}))

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		client = gateway.NewClient(gateway.Config{BaseURL: server.URL + "/", APIKey: "k", Timeout: time.Second}, logger, nil)
	})

	AfterEach(func() {
		server.Close()
	})

	Describe("ListUsers", func() {
		It("decodes the user list", func() {
			reply = []directoryuser.RawUser{
				{ID: 1, Name: "Leanne Graham", Email: "Sincere@april.biz", Company: directoryuser.Company{Name: "Romaguera-Crona"}},
			}
			users, err := client.ListUsers(context.Background())
			Expect(err).NotTo(HaveOccurred())
			Expect(users).To(HaveLen(1))
			Expect(users[0].Company.Name).To(Equal("Romaguera-Crona"))
			Expect(captured[0].Method).To(Equal(http.MethodGet))
			Expect(captured[0].Path).To(Equal("/users"))
			Expect(captured[0].APIKey).To(Equal("k"))
		})

		It("reports a fetch failure on a non-2xx status", func() {
			status = http.StatusInternalServerError
			_, err := client.ListUsers(context.Background())
			Expect(err).To(MatchError(internal.ErrFetchFailed))

			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Message).To(Equal("Failed to fetch users"))

			var statusErr *gateway.StatusError
			Expect(errors.As(err, &statusErr)).To(BeTrue())
			Expect(statusErr.StatusCode).To(Equal(http.StatusInternalServerError))
		})

		It("reports a fetch failure when the directory is unreachable", func() {
			server.Close()
			_, err := client.ListUsers(context.Background())
			Expect(err).To(MatchError(internal.ErrFetchFailed))
		})
	})

	Describe("CreateUser", func() {
		It("posts the directory payload without an id", func() {
			reply = directoryuser.RawUser{ID: 11}
			created, err := client.CreateUser(context.Background(), draft)
			Expect(err).NotTo(HaveOccurred())
			Expect(created.ID).To(Equal(int64(11)))

			body := captured[0].Body
			Expect(captured[0].Method).To(Equal(http.MethodPost))
			Expect(body).NotTo(HaveKey("id"))
			Expect(body["name"]).To(Equal("Ann Lee"))
			Expect(body["username"]).To(Equal("ann"))
			Expect(body["email"]).To(Equal("ann@x.com"))
			Expect(body["company"]).To(Equal(map[string]any{"name": "HR"}))
			Expect(body["phone"]).To(Equal(""))
			Expect(body["website"]).To(Equal(""))
			Expect(body["address"]).To(Equal(map[string]any{
				"street": "", "suite": "", "city": "", "zipcode": "",
				"geo": map[string]any{"lat": "", "lng": ""},
			}))
		})

		It("reports a save failure", func() {
			status = http.StatusBadRequest
			_, err := client.CreateUser(context.Background(), draft)
			Expect(err).To(MatchError(internal.ErrMutationFailed))
			appErr, _ := internal.IsAppError(err)
			Expect(appErr.Message).To(Equal("Failed to save user"))
		})
	})

	Describe("UpdateUser", func() {
		It("puts to the user path with the id in the body", func() {
			reply = directoryuser.RawUser{ID: 3}
			_, err := client.UpdateUser(context.Background(), 3, draft)
			Expect(err).NotTo(HaveOccurred())
			Expect(captured[0].Method).To(Equal(http.MethodPut))
			Expect(captured[0].Path).To(Equal("/users/3"))
			Expect(captured[0].Body["id"]).To(BeEquivalentTo(3))
		})
	})

	Describe("DeleteUser", func() {
		It("deletes the user path", func() {
			Expect(client.DeleteUser(context.Background(), 4)).To(Succeed())
			Expect(captured[0].Method).To(Equal(http.MethodDelete))
			Expect(captured[0].Path).To(Equal("/users/4"))
		})

		It("reports a delete failure", func() {
			status = http.StatusNotFound
			err := client.DeleteUser(context.Background(), 4)
			appErr, ok := internal.IsAppError(err)
			Expect(ok).To(BeTrue())
			Expect(appErr.Code).To(Equal(internal.ErrCodeMutationFailed))
			Expect(appErr.Message).To(Equal("Failed to delete user"))
		})
	})

	It("lowercases the username with Unicode rules", func() {
		p := gateway.BuildPayload(record.Draft{FirstName: "ÉMILE", LastName: "Zola"}, 0)
		Expect(p.Username).To(Equal("émile"))
		Expect(p.Name).To(Equal("ÉMILE Zola"))
	})
})
