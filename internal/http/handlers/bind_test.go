package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/geocoder89/supportdesk/internal/http/handlers"
	"github.com/gin-gonic/gin"
)

type bindTarget struct {
	Email string `json:"email" binding:"required,email"`
	Count int    `json:"count" binding:"omitempty,min=1"`
}

func bindRouter() *gin.Engine {
	r := gin.New()
	r.POST("/bind", func(c *gin.Context) {
		var out bindTarget

		if !handlers.BindJSON(c, &out) {
			return
		}

		c.JSON(http.StatusOK, out)
	})

	return r
}

func TestBindJSONReportsFieldErrors(t *testing.T) {
	r := bindRouter()

	w := doJSONAuthed(t, r, http.MethodPost, "/bind", "", `{"email":"not-an-email"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var resp struct {
		Error struct {
			Code    string `json:"code"`
			Details struct {
				Fields []handlers.FieldError `json:"fields"`
			} `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}

	if resp.Error.Code != "invalid_request" {
		t.Errorf("code = %q, want invalid_request", resp.Error.Code)
	}
	if len(resp.Error.Details.Fields) != 1 {
		t.Fatalf("fields = %d, want 1 (%s)", len(resp.Error.Details.Fields), w.Body.String())
	}

	fe := resp.Error.Details.Fields[0]
	if fe.Field != "email" {
		t.Errorf("field = %q, want the json tag name %q", fe.Field, "email")
	}
	if fe.Rule != "email" {
		t.Errorf("rule = %q, want email", fe.Rule)
	}
}

func TestBindJSONReportsSyntaxErrors(t *testing.T) {
	r := bindRouter()

	w := doJSONAuthed(t, r, http.MethodPost, "/bind", "", `{"email": `)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestBindJSONReportsTypeMismatch(t *testing.T) {
	r := bindRouter()

	w := doJSONAuthed(t, r, http.MethodPost, "/bind", "", `{"email":"a@b.com","count":"three"}`)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
