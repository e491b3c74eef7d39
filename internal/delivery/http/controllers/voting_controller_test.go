package controllers

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"voterlink/internal/adapters/pages"
	"voterlink/internal/domain"
)

const redirectURL = "https://wa.me/59170000000?text=Hola"

func newVotingController(ballots *fakeBallotService, reg *fakeRegistrationService, p *fakePages) *VotingController {
	return NewVotingController(testLogger(), ballots, reg, p, VotingConfig{
		RegistrationRedirectURL: redirectURL,
		SecureCookie:            true,
	})
}

func TestVotingController_Vote(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		visitErr   error
		wantStatus int
		wantBody   string
		wantCookie bool
	}{
		{"success renders form", "?token=abc", nil, http.StatusOK, "page:" + pages.BallotForm, true},
		{"missing token", "", nil, http.StatusBadRequest, msgNoToken, false},
		{"expired", "?token=abc", domain.ErrTokenExpired, http.StatusGone, msgExpired, false},
		{"tampered", "?token=abc", fmt.Errorf("%w: signature", domain.ErrTokenInvalid), http.StatusForbidden, msgTampered, false},
		{"wrong domain", "?token=abc", domain.ErrDomainMismatch, http.StatusForbidden, msgWrongDomain, false},
		{"reused", "?token=abc", domain.ErrAlreadyUsedOrInvalid, http.StatusForbidden, msgUsedOrInvalid, false},
		{"already voted", "?token=abc", domain.ErrDuplicateVote, http.StatusOK, "page:" + pages.AlreadyVoted, false},
		{"store failure", "?token=abc", errBoom, http.StatusInternalServerError, msgInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballots := &fakeBallotService{visitGrant: testGrant(), visitErr: tt.visitErr}
			p := &fakePages{}
			c := newVotingController(ballots, &fakeRegistrationService{}, p)
			rr := httptest.NewRecorder()

			c.Vote(rr, httptest.NewRequest(http.MethodGet, "/votar"+tt.query, nil))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			cookies := rr.Result().Cookies()
			if !tt.wantCookie {
				assert.Empty(t, cookies)
				return
			}
			require.Len(t, cookies, 1)
			ck := cookies[0]
			assert.Equal(t, GrantCookie, ck.Name)
			assert.Equal(t, "grant-1", ck.Value)
			assert.True(t, ck.HttpOnly)
			assert.True(t, ck.Secure)
			assert.Equal(t, "abc", ballots.lastToken)
			assert.Equal(t, pages.BallotFormData{PhoneNumber: "+59170000001"}, p.lastData)
		})
	}
}

func submitRequest(form url.Values, grantID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/enviar_voto", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if grantID != "" {
		req.AddCookie(&http.Cookie{Name: GrantCookie, Value: grantID})
	}
	return req
}

func TestVotingController_Submit(t *testing.T) {
	form := url.Values{
		"genero": {"Femenino"}, "pais": {"Bolivia"}, "departamento": {"La Paz"},
		"provincia": {"Murillo"}, "id_municipio": {"20101"}, "municipio_nombre": {"La Paz"},
		"recinto": {"U.E. Ayacucho"}, "dia_nacimiento": {"12"}, "mes_nacimiento": {"3"},
		"anio_nacimiento": {"1988"}, "candidato": {"c-1"}, "pregunta3": {"No"},
		"latitud": {"-16.5"},
	}

	tests := []struct {
		name        string
		grantID     string
		submitErr   error
		wantStatus  int
		wantBody    string
		wantCleared bool
	}{
		{"success", "grant-1", nil, http.StatusOK, "page:" + pages.VoteSuccess, true},
		{"no grant cookie", "", nil, http.StatusForbidden, msgNoGrant, false},
		{"expired grant", "grant-1", domain.ErrUnauthorized, http.StatusForbidden, msgNoGrant, true},
		{"already voted", "grant-1", domain.ErrDuplicateVote, http.StatusOK, "page:" + pages.AlreadyVoted, true},
		{"missing field", "grant-1", domain.NewFieldError("genero", domain.ErrMissingField), http.StatusBadRequest, "page:" + pages.MissingFields, false},
		{"yes without ci", "grant-1", domain.NewFieldError("ci", domain.ErrMissingConditionalField), http.StatusBadRequest, msgIdentityRequired, false},
		{"bad ci", "grant-1", domain.NewFieldError("ci", domain.ErrInvalidField), http.StatusBadRequest, msgBadIdentity, false},
		{"bad month", "grant-1", domain.NewFieldError("mes_nacimiento", domain.ErrInvalidField), http.StatusBadRequest, "Valor inválido en el campo mes_nacimiento.", false},
		{"store failure", "grant-1", errBoom, http.StatusInternalServerError, msgInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ballots := &fakeBallotService{submitBallot: &domain.Ballot{PhoneNumber: "+59170000001"}, submitErr: tt.submitErr}
			c := newVotingController(ballots, &fakeRegistrationService{}, &fakePages{})
			rr := httptest.NewRecorder()

			c.Submit(rr, submitRequest(form, tt.grantID))

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantBody, rr.Body.String())
			cleared := false
			for _, ck := range rr.Result().Cookies() {
				if ck.Name == GrantCookie && ck.MaxAge < 0 {
					cleared = true
				}
			}
			assert.Equal(t, tt.wantCleared, cleared)
			if tt.grantID == "" {
				assert.Nil(t, ballots.lastForm, "service not called")
				return
			}
			assert.Equal(t, "grant-1", ballots.lastGrantID)
			assert.Equal(t, "203.0.113.5", ballots.lastIP)
			assert.Equal(t, "Murillo", ballots.lastForm.Province)
			assert.Equal(t, "La Paz", ballots.lastForm.Municipality)
			assert.Equal(t, "-16.5", ballots.lastForm.Latitude)
			assert.Empty(t, ballots.lastForm.IdentityDocument)
		})
	}
}

func TestVotingController_Register(t *testing.T) {
	tests := []struct {
		name         string
		regErr       error
		wantStatus   int
		wantBody     string
		wantLocation string
	}{
		{"redirects to whatsapp", nil, http.StatusSeeOther, "", redirectURL},
		{"missing number", domain.NewFieldError("numero", domain.ErrMissingField), http.StatusBadRequest, msgRegisterMissing, ""},
		{"invalid number", domain.NewFieldError("numero", domain.ErrInvalidField), http.StatusBadRequest, "page:" + pages.Register, ""},
		{"already voted", domain.ErrDuplicateVote, http.StatusOK, "page:" + pages.AlreadyVoted, ""},
		{"store failure", errBoom, http.StatusInternalServerError, msgInternal, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := &fakeRegistrationService{phone: "+59170000001", err: tt.regErr}
			c := newVotingController(&fakeBallotService{}, reg, &fakePages{})
			form := url.Values{"pais": {"+591"}, "numero": {"7000-0001"}}
			req := httptest.NewRequest(http.MethodPost, "/generar_link", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			rr := httptest.NewRecorder()

			c.Register(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "+591", reg.lastCountry)
			assert.Equal(t, "7000-0001", reg.lastNumber)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rr.Header().Get("Location"))
				return
			}
			assert.Equal(t, tt.wantBody, rr.Body.String())
		})
	}
}

func TestVotingController_RenderFailure(t *testing.T) {
	c := newVotingController(&fakeBallotService{}, &fakeRegistrationService{}, &fakePages{err: errBoom})
	rr := httptest.NewRecorder()

	c.RegisterForm(rr, httptest.NewRequest(http.MethodGet, "/generar_link", nil))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Equal(t, msgInternal, rr.Body.String())
}

func TestVotingController_FAQ(t *testing.T) {
	p := &fakePages{}
	c := NewVotingController(testLogger(), &fakeBallotService{}, &fakeRegistrationService{}, p, VotingConfig{LinkValidMinutes: 10})
	rr := httptest.NewRecorder()

	c.FAQ(rr, httptest.NewRequest(http.MethodGet, "/preguntas", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "page:"+pages.FAQ, rr.Body.String())
	assert.Equal(t, pages.FAQData{LinkValidMinutes: 10}, p.lastData)
}

func TestVotingController_Index(t *testing.T) {
	c := newVotingController(&fakeBallotService{}, &fakeRegistrationService{}, &fakePages{})
	rr := httptest.NewRecorder()
	c.Index(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/generar_link", rr.Header().Get("Location"))
}
