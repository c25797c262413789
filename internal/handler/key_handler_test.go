package handler_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"brfiscal/internal/domain"
	"brfiscal/internal/edoc"
	"brfiscal/internal/handler"
	"brfiscal/internal/service"
	"brfiscal/mocks"
)

func TestKeyHandler_Parse_Success(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	mockSvc.On("Parse", mock.Anything, nfeKey).Return(&service.KeyInfo{
		Key: nfeKey, UF: "SP", Model: "55", Number: "000003589", Valid: true,
	}, nil)

	c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/parse", gin.H{"key": nfeKey})
	h.Parse(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "SP", data["uf"])
	assert.Equal(t, true, data["valid"])
	mockSvc.AssertExpectations(t)
}

func TestKeyHandler_Parse_Malformed(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	mockSvc.On("Parse", mock.Anything, "123").
		Return(nil, fmt.Errorf("key %q: %w", "123", domain.ErrMalformedKey))

	c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/parse", gin.H{"key": "123"})
	h.Parse(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "MALFORMED_KEY", decode(t, w).Error.Code)
}

func TestKeyHandler_Build_Success(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	mockSvc.On("Build", mock.Anything, edoc.Fields{
		UF: 35, YearMonth: "2103", Issuer: "20695448000184",
		Model: "55", Series: 1, Number: 3589, IssuanceForm: 1,
	}).Return(&service.KeyInfo{Key: nfeKey, Valid: true}, nil)

	c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/build", gin.H{
		"uf": 35, "year_month": "2103", "issuer": "20695448000184",
		"model": "55", "series": 1, "number": 3589, "issuance_form": 1,
	})
	h.Build(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, nfeKey, decode(t, w).Data.(map[string]interface{})["key"])
	mockSvc.AssertExpectations(t)
}

func TestKeyHandler_Build_BindingError(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/build", gin.H{
		"uf": 35, "year_month": "21-03", "issuer": "20695448000184", "model": "55", "number": 1,
	})
	h.Build(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockSvc.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
}

func TestKeyHandler_Build_RequestRules(t *testing.T) {
	cases := []struct {
		name string
		body gin.H
	}{
		{"missing uf", gin.H{"year_month": "2103", "issuer": "20695448000184", "model": "55", "number": 1}},
		{"short model", gin.H{"uf": 35, "year_month": "2103", "issuer": "20695448000184", "model": "5", "number": 1}},
		{"zero number", gin.H{"uf": 35, "year_month": "2103", "issuer": "20695448000184", "model": "55", "number": 0}},
		{"issuance form too large", gin.H{"uf": 35, "year_month": "2103", "issuer": "20695448000184", "model": "55", "number": 1, "issuance_form": 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockSvc := new(mocks.MockKeyService)
			h := handler.NewKeyHandler(mockSvc)

			c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/build", tc.body)
			h.Build(c)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
			mockSvc.AssertNotCalled(t, "Build", mock.Anything, mock.Anything)
		})
	}
}

func TestKeyHandler_Build_InvalidIssuer(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	mockSvc.On("Build", mock.Anything, mock.Anything).Return(nil, domain.ErrInvalidIssuerID)

	c, w := jsonContext(t, http.MethodPost, "/api/v1/keys/build", gin.H{
		"uf": 35, "year_month": "2103", "issuer": "11111111111111", "model": "55", "number": 1,
	})
	h.Build(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "INVALID_ISSUER_ID", decode(t, w).Error.Code)
}

func TestKeyHandler_Parts(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	parts := []string{"35210320695", "44800018455", "00100000358", "91981839923"}
	mockSvc.On("Partition", mock.Anything, nfeKey, 4).Return(parts, nil)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/keys/"+nfeKey+"/parts?n=4", nil)
	c.Params = gin.Params{{Key: "key", Value: nfeKey}}
	h.Parts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Len(t, data["parts"], 4)
	mockSvc.AssertExpectations(t)
}

func TestKeyHandler_Parts_DefaultN(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	mockSvc.On("Partition", mock.Anything, nfeKey, 11).Return(make([]string, 11), nil)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/keys/"+nfeKey+"/parts", nil)
	c.Params = gin.Params{{Key: "key", Value: nfeKey}}
	h.Parts(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestKeyHandler_Parts_BadN(t *testing.T) {
	mockSvc := new(mocks.MockKeyService)
	h := handler.NewKeyHandler(mockSvc)

	c, w := jsonContext(t, http.MethodGet, "/api/v1/keys/"+nfeKey+"/parts?n=abc", nil)
	c.Params = gin.Params{{Key: "key", Value: nfeKey}}
	h.Parts(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	mockSvc.On("Partition", mock.Anything, nfeKey, 5).Return(nil, domain.ErrInvalidInput)
	c, w = jsonContext(t, http.MethodGet, "/api/v1/keys/"+nfeKey+"/parts?n=5", nil)
	c.Params = gin.Params{{Key: "key", Value: nfeKey}}
	h.Parts(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_INPUT", decode(t, w).Error.Code)
}
