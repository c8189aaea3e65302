package twocomp

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const subjectJSON = `"subject":{"sex":"Masculino","age":25,"weight_kg":70,"height_cm":170}`

func TestHandler_Calc(t *testing.T) {
	h := &Handler{}
	body := `{` + subjectJSON + `,"skinfolds":{"tricipital":10,"bicipital":5,"subescapular":12,"suprailiaco":8}}`
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"diagnostic":"Nivel de grasa saludable (Atleta)"`)
}

func TestHandler_RejectsNegativeSkinfold(t *testing.T) {
	h := &Handler{}
	body := `{` + subjectJSON + `,"skinfolds":{"tricipital":-20,"bicipital":10,"subescapular":10,"suprailiaco":10}}`
	rec := httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Tricipital")
}
