package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nalharbi/inspection-management/internal"
	"github.com/nalharbi/inspection-management/internal/auth"
)

type stubTokenService struct {
	subject string
}

func (s *stubTokenService) Register(dto auth.RegisterDTO) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, nil
}

func (s *stubTokenService) Authenticate(dto auth.LoginDTO) (auth.TokenResponse, error) {
	return auth.TokenResponse{}, nil
}

func (s *stubTokenService) ValidateToken(tokenString string) (*auth.Claims, error) {
	if tokenString != "good-token" {
		return nil, internal.ErrInvalidToken
	}
	claims := &auth.Claims{}
	claims.Subject = s.subject
	return claims, nil
}

var _ = Describe("AuthMiddleware", func() {
	var (
		handler *auth.Handler
		nextHit bool
		subject string
		gated   http.Handler
	)

	BeforeEach(func() {
		handler = auth.NewHandler(&stubTokenService{subject: "cred-42"})
		nextHit = false
		subject = ""
		gated = handler.AuthMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			nextHit = true
			subject = internal.SubjectFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))
	})

	It("rejects a request without an Authorization header", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		w := httptest.NewRecorder()

		gated.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextHit).To(BeFalse())
		Expect(w.Body.String()).To(ContainSubstring("message"))
	})

	It("rejects a non-Bearer Authorization header", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
		w := httptest.NewRecorder()

		gated.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextHit).To(BeFalse())
	})

	It("rejects an invalid token", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer bad-token")
		w := httptest.NewRecorder()

		gated.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusUnauthorized))
		Expect(nextHit).To(BeFalse())
	})

	It("passes a valid token through with the subject on the context", func() {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer good-token")
		w := httptest.NewRecorder()

		gated.ServeHTTP(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(nextHit).To(BeTrue())
		Expect(subject).To(Equal("cred-42"))
	})
})

var _ = Describe("Logout", func() {
	It("acknowledges without touching any state", func() {
		handler := auth.NewHandler(&stubTokenService{})
		req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", strings.NewReader(""))
		w := httptest.NewRecorder()

		handler.Logout(w, req)

		Expect(w.Code).To(Equal(http.StatusOK))
		Expect(w.Body.String()).To(ContainSubstring("logged out"))
	})
})
