package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/jrsteele09/go-token-service/internal/metrics"
	"github.com/jrsteele09/go-token-service/oauthmodel"
	"github.com/jrsteele09/go-token-service/profile"
)

// AccessToken handles the token endpoint. The caller profile is established
// here — the pipeline itself never reads transport state.
func (s *Server) AccessToken() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// OAuth token requests are small forms; anything larger is abuse.
		r.Body = http.MaxBytesReader(w, r.Body, 64<<10)

		if err := r.ParseForm(); err != nil {
			s.log.Warn().Err(err).Msg("failed to parse token request form")
			writeErrorResponse(w, oauthmodel.FormatText, oauthmodel.CodeInvalidRequest)
			return
		}

		req := oauthmodel.ParseAccessTokenRequest(r.PostForm, r.Header.Get("Accept"))
		caller := s.resolveCallerProfile(r, req)

		resp, err := s.pipeline.Handle(r.Context(), req, caller)
		metrics.RequestDuration.Observe(time.Since(start).Seconds())

		if err != nil {
			code := oauthmodel.ErrorCode(err)
			metrics.RequestFailures.WithLabelValues(code).Inc()
			writeErrorResponse(w, req.Format, code)
			return
		}

		metrics.TokensIssued.WithLabelValues(string(req.GrantType)).Inc()
		writeTokenResponse(w, req.Format, resp)
	}
}

// resolveCallerProfile stands in for the upstream authentication layer.
//
// For client grants (authorization_code, refresh_token) the client
// authenticates with its client credentials, via HTTP Basic or form
// parameters, checked against the registered service's secret hash. For the
// password grant the profile is the claimed resource-owner identity; the
// credentials themselves are authenticated by the password extractor, so a
// wrong password surfaces as invalid_grant, not invalid_request.
//
// A nil return means no profile could be established; the validator rejects
// such requests before any ticket is touched.
func (s *Server) resolveCallerProfile(r *http.Request, req *oauthmodel.AccessTokenRequest) *profile.CallerProfile {
	if req.GrantType == oauthmodel.GrantTypePassword {
		if req.Username == "" {
			return nil
		}
		return profile.NewUserProfile(req.Username)
	}

	clientID, clientSecret := clientCredentials(r)
	if clientID == "" {
		return nil
	}
	service, err := s.registry.Get(clientID)
	if err != nil {
		s.log.Warn().Str("client_id", clientID).Msg("client authentication failed: unknown client")
		return nil
	}
	if !service.CheckSecret(clientSecret) {
		s.log.Warn().Str("client_id", clientID).Msg("client authentication failed: secret mismatch")
		return nil
	}
	return profile.NewClientProfile(clientID)
}

// clientCredentials reads client credentials from HTTP Basic auth, falling
// back to form parameters. Basic credentials arrive form-urlencoded per RFC
// 6749 §2.3.1, hence the unescape.
func clientCredentials(r *http.Request) (string, string) {
	if id, secret, ok := r.BasicAuth(); ok {
		if unescaped, err := url.QueryUnescape(id); err == nil {
			id = unescaped
		}
		if unescaped, err := url.QueryUnescape(secret); err == nil {
			secret = unescaped
		}
		return id, secret
	}
	return r.PostForm.Get(oauthmodel.ParamClientID), r.PostForm.Get(oauthmodel.ParamClientSecret)
}
