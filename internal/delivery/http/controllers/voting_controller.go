package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"voterlink/internal/adapters/pages"
	"voterlink/internal/delivery/http/helpers"
	"voterlink/internal/domain"
)

// MsgForeignReferer answers a ballot submission posted from another site.
const MsgForeignReferer = "Acceso no autorizado (referer inválido)."

// GrantCookie carries the authorization grant id between the link visit and the submission.
const GrantCookie = "voterlink_grant"

// User-facing texts.
const (
	msgNoToken          = "Acceso no válido."
	msgExpired          = "El enlace ha expirado. Solicita uno nuevo."
	msgTampered         = "Enlace inválido o alterado."
	msgWrongDomain      = "Dominio inválido para este enlace."
	msgUsedOrInvalid    = "Este enlace ya fue utilizado, es inválido o ha intentado manipular el proceso."
	msgNoGrant          = "Acceso denegado: sin sesión válida o token expirado."
	msgIdentityRequired = "Debes ingresar tu CI si respondes que colaborarás en el control del voto."
	msgBadIdentity      = "CI inválido."
	msgRegisterMissing  = "Por favor, selecciona un país e ingresa tu número."
	msgRegisterInvalid  = "El número ingresado no es válido."
	msgInternal         = "Ocurrió un error. Intenta nuevamente más tarde."
)

// VotingConfig holds what the voting pages need besides the services.
type VotingConfig struct {
	// RegistrationRedirectURL is where a successful registration sends the browser (WhatsApp click-to-chat).
	RegistrationRedirectURL string
	// SecureCookie marks the grant cookie Secure; set when serving over https.
	SecureCookie bool
	// LinkValidMinutes is shown on the FAQ page.
	LinkValidMinutes int
}

// VotingController serves the registration, link visit and ballot submission pages.
type VotingController struct {
	Logger       *slog.Logger
	Ballots      domain.BallotService
	Registration domain.RegistrationService
	Pages        domain.PageRenderer
	Config       VotingConfig
}

// NewVotingController creates a VotingController.
func NewVotingController(logger *slog.Logger, ballots domain.BallotService, registration domain.RegistrationService, pageRenderer domain.PageRenderer, cfg VotingConfig) *VotingController {
	return &VotingController{
		Logger:       logger,
		Ballots:      ballots,
		Registration: registration,
		Pages:        pageRenderer,
		Config:       cfg,
	}
}

// Index redirects to the registration page.
func (c *VotingController) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/generar_link", http.StatusFound)
}

// FAQ godoc
// @Summary Frequently asked questions
// @Tags voting
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /preguntas [get]
func (c *VotingController) FAQ(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, pages.FAQ, pages.FAQData{LinkValidMinutes: c.Config.LinkValidMinutes})
}

// RegisterForm godoc
// @Summary Registration form
// @Tags voting
// @Produce html
// @Success 200 {string} string "HTML page"
// @Router /generar_link [get]
func (c *VotingController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	c.render(w, r, http.StatusOK, pages.Register, pages.RegisterData{Countries: pages.Countries})
}

// Register godoc
// @Summary Register a phone number
// @Description Stores a pending authorization for +<pais><numero> and redirects to WhatsApp, where the voter asks for the link.
// @Tags voting
// @Accept x-www-form-urlencoded
// @Produce html
// @Param pais formData string true "Country calling code, e.g. +591"
// @Param numero formData string true "Phone number without the country code"
// @Success 303 {string} string "redirect to WhatsApp"
// @Success 200 {string} string "already voted page"
// @Failure 400 {string} string "missing or invalid number"
// @Router /generar_link [post]
func (c *VotingController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		helpers.WriteText(w, http.StatusBadRequest, msgRegisterMissing)
		return
	}
	phone, err := c.Registration.Register(r.Context(), r.PostFormValue("pais"), r.PostFormValue("numero"))
	switch {
	case err == nil:
		c.Logger.InfoContext(r.Context(), "number registered", "phone", phone)
		http.Redirect(w, r, c.Config.RegistrationRedirectURL, http.StatusSeeOther)
	case errors.Is(err, domain.ErrMissingField):
		helpers.WriteText(w, http.StatusBadRequest, msgRegisterMissing)
	case errors.Is(err, domain.ErrInvalidField):
		c.render(w, r, http.StatusBadRequest, pages.Register, pages.RegisterData{Countries: pages.Countries, Error: msgRegisterInvalid})
	case errors.Is(err, domain.ErrDuplicateVote):
		c.render(w, r, http.StatusOK, pages.AlreadyVoted, nil)
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteText(w, http.StatusInternalServerError, msgInternal)
	}
}

// Vote godoc
// @Summary Open a voting link
// @Description Validates the link token, creates a short-lived submission grant (HttpOnly cookie) and renders the ballot form.
// @Tags voting
// @Produce html
// @Param token query string true "Link token"
// @Success 200 {string} string "ballot form or already voted page"
// @Failure 400 {string} string "missing token"
// @Failure 403 {string} string "invalid, tampered, reused or foreign-domain token"
// @Failure 410 {string} string "expired token"
// @Router /votar [get]
func (c *VotingController) Vote(w http.ResponseWriter, r *http.Request) {
	token := strings.TrimSpace(r.URL.Query().Get("token"))
	if token == "" {
		helpers.WriteText(w, http.StatusBadRequest, msgNoToken)
		return
	}
	grant, err := c.Ballots.VisitLink(r.Context(), token)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrTokenExpired):
		helpers.WriteText(w, http.StatusGone, msgExpired)
		return
	case errors.Is(err, domain.ErrDomainMismatch):
		helpers.WriteText(w, http.StatusForbidden, msgWrongDomain)
		return
	case errors.Is(err, domain.ErrTokenInvalid):
		helpers.WriteText(w, http.StatusForbidden, msgTampered)
		return
	case errors.Is(err, domain.ErrAlreadyUsedOrInvalid):
		helpers.WriteText(w, http.StatusForbidden, msgUsedOrInvalid)
		return
	case errors.Is(err, domain.ErrDuplicateVote):
		c.render(w, r, http.StatusOK, pages.AlreadyVoted, nil)
		return
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteText(w, http.StatusInternalServerError, msgInternal)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     GrantCookie,
		Value:    grant.ID,
		Path:     "/",
		Expires:  grant.ExpiresAt,
		HttpOnly: true,
		Secure:   c.Config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	w.Header().Set("Cache-Control", "no-store")
	c.render(w, r, http.StatusOK, pages.BallotForm, pages.BallotFormData{PhoneNumber: grant.PhoneNumber})
}

// Submit godoc
// @Summary Submit a ballot
// @Description Commits one ballot for the number bound to the grant cookie. The grant is consumed on success.
// @Tags voting
// @Accept x-www-form-urlencoded
// @Produce html
// @Param genero formData string true "Gender"
// @Param pais formData string true "Country"
// @Param departamento formData string true "Department"
// @Param provincia formData string true "Province"
// @Param id_municipio formData string true "Municipality id"
// @Param municipio_nombre formData string true "Municipality name"
// @Param recinto formData string true "Precinct"
// @Param dia_nacimiento formData int true "Birth day"
// @Param mes_nacimiento formData int true "Birth month"
// @Param anio_nacimiento formData int true "Birth year"
// @Param candidato formData string true "Candidate id"
// @Param pregunta3 formData string true "Volunteers for vote control (Sí/No)"
// @Param ci formData string false "Identity document, required when pregunta3 is yes"
// @Param latitud formData number false "Latitude"
// @Param longitud formData number false "Longitude"
// @Success 200 {string} string "success or already voted page"
// @Failure 400 {string} string "validation failure"
// @Failure 403 {string} string "foreign referer or missing grant"
// @Router /enviar_voto [post]
func (c *VotingController) Submit(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(GrantCookie)
	if err != nil || cookie.Value == "" {
		helpers.WriteText(w, http.StatusForbidden, msgNoGrant)
		return
	}
	if err := r.ParseForm(); err != nil {
		c.render(w, r, http.StatusBadRequest, pages.MissingFields, nil)
		return
	}

	ballot, err := c.Ballots.Submit(r.Context(), cookie.Value, ballotForm(r), helpers.ClientIP(r))
	var fe *domain.FieldError
	switch {
	case err == nil:
		c.clearGrant(w)
		c.render(w, r, http.StatusOK, pages.VoteSuccess, ballot)
	case errors.Is(err, domain.ErrUnauthorized):
		c.clearGrant(w)
		helpers.WriteText(w, http.StatusForbidden, msgNoGrant)
	case errors.Is(err, domain.ErrDuplicateVote):
		c.clearGrant(w)
		c.render(w, r, http.StatusOK, pages.AlreadyVoted, nil)
	case errors.Is(err, domain.ErrMissingField):
		c.render(w, r, http.StatusBadRequest, pages.MissingFields, nil)
	case errors.Is(err, domain.ErrMissingConditionalField):
		helpers.WriteText(w, http.StatusBadRequest, msgIdentityRequired)
	case errors.As(err, &fe) && fe.Field == "ci":
		helpers.WriteText(w, http.StatusBadRequest, msgBadIdentity)
	case errors.As(err, &fe):
		helpers.WriteText(w, http.StatusBadRequest, "Valor inválido en el campo "+fe.Field+".")
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteText(w, http.StatusInternalServerError, msgInternal)
	}
}

func ballotForm(r *http.Request) *domain.BallotForm {
	return &domain.BallotForm{
		Gender:           r.PostFormValue("genero"),
		Country:          r.PostFormValue("pais"),
		Department:       r.PostFormValue("departamento"),
		Province:         r.PostFormValue("provincia"),
		MunicipalityID:   r.PostFormValue("id_municipio"),
		Municipality:     r.PostFormValue("municipio_nombre"),
		Precinct:         r.PostFormValue("recinto"),
		BirthDay:         r.PostFormValue("dia_nacimiento"),
		BirthMonth:       r.PostFormValue("mes_nacimiento"),
		BirthYear:        r.PostFormValue("anio_nacimiento"),
		Candidate:        r.PostFormValue("candidato"),
		ControlVolunteer: r.PostFormValue("pregunta3"),
		IdentityDocument: r.PostFormValue("ci"),
		Latitude:         r.PostFormValue("latitud"),
		Longitude:        r.PostFormValue("longitud"),
	}
}

func (c *VotingController) clearGrant(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     GrantCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Config.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (c *VotingController) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	var buf strings.Builder
	if err := c.Pages.Render(&buf, page, data); err != nil {
		c.Logger.ErrorContext(r.Context(), "page render failed", "page", page, "err", err)
		helpers.WriteText(w, http.StatusInternalServerError, msgInternal)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(buf.String()))
}
