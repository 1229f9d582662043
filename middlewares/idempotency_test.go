package middlewares

import (
	"testing"

	"contractorhub-backend/models"
)

func TestResolveReplay(t *testing.T) {
	const hash = "a3f1"

	t.Run("completed record replays, handler must not run", func(t *testing.T) {
		rec := models.IdempotencyKey{
			RequestHash:    hash,
			ResponseStatus: 201,
			ResponseBody:   []byte(`{"id":7}`),
		}
		conflict, replay := resolveReplay(rec, hash)
		if conflict {
			t.Fatal("matching hash must not conflict")
		}
		if !replay {
			t.Fatal("stored response must be replayed; re-running the handler would book the request twice")
		}
	})

	t.Run("in-flight record proceeds", func(t *testing.T) {
		rec := models.IdempotencyKey{RequestHash: hash, ResponseStatus: 0}
		conflict, replay := resolveReplay(rec, hash)
		if conflict || replay {
			t.Fatalf("first attempt in flight should proceed, got conflict=%v replay=%v", conflict, replay)
		}
	})

	t.Run("record without stored body proceeds", func(t *testing.T) {
		rec := models.IdempotencyKey{RequestHash: hash, ResponseStatus: 201, ResponseBody: nil}
		if _, replay := resolveReplay(rec, hash); replay {
			t.Fatal("no stored body to replay")
		}
	})

	t.Run("key reuse with different request conflicts", func(t *testing.T) {
		rec := models.IdempotencyKey{RequestHash: "other", ResponseStatus: 201, ResponseBody: []byte(`{}`)}
		conflict, replay := resolveReplay(rec, hash)
		if !conflict {
			t.Fatal("different hash under the same key must conflict")
		}
		if replay {
			t.Fatal("conflicting request must never replay another request's response")
		}
	})
}
