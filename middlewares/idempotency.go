package middlewares

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Idempotency processes Idempotency-Key for mutating HTTP methods. The
// first request under a key is executed and its response remembered; a
// replay with the same key and an identical request gets the remembered
// response back, a replay with a different request is rejected. Entries
// live in memory only, which matches a single-process backend with no
// shared store.
func Idempotency() fiber.Handler {
	store := &idempotencyStore{entries: make(map[string]idempotencyEntry)}

	return func(c *fiber.Ctx) error {
		method := strings.ToUpper(c.Method())
		if method != fiber.MethodPost && method != fiber.MethodPut && method != fiber.MethodPatch && method != fiber.MethodDelete {
			return c.Next()
		}

		key := strings.TrimSpace(c.Get("Idempotency-Key"))
		if key == "" {
			return c.Next()
		}
		if len(key) > 128 {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Idempotency-Key too long"})
		}

		dentist, _ := c.Locals("dentist").(string)

		// Build deterministic request hash: method|path|body|dentist
		h := sha256.New()
		h.Write([]byte(method))
		h.Write([]byte{'\n'})
		h.Write([]byte(c.OriginalURL()))
		h.Write([]byte{'\n'})
		h.Write(c.Body())
		h.Write([]byte{'\n'})
		h.Write([]byte(dentist))
		reqHash := hex.EncodeToString(h.Sum(nil))

		if entry, ok := store.get(key); ok {
			if entry.requestHash != reqHash {
				return c.Status(fiber.StatusConflict).JSON(fiber.Map{
					"message": "Idempotency-Key reused with a different request",
				})
			}
			c.Set(fiber.HeaderContentType, entry.contentType)
			return c.Status(entry.status).Send(entry.body)
		}

		if err := c.Next(); err != nil {
			return err
		}

		store.put(key, idempotencyEntry{
			requestHash: reqHash,
			status:      c.Response().StatusCode(),
			contentType: string(c.Response().Header.ContentType()),
			body:        append([]byte(nil), c.Response().Body()...),
			storedAt:    time.Now(),
		})
		return nil
	}
}

const idempotencyTTL = 24 * time.Hour

type idempotencyEntry struct {
	requestHash string
	status      int
	contentType string
	body        []byte
	storedAt    time.Time
}

type idempotencyStore struct {
	mu      sync.Mutex
	entries map[string]idempotencyEntry
}

func (s *idempotencyStore) get(key string) (idempotencyEntry, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[key]
	if ok && time.Since(e.storedAt) > idempotencyTTL {
		delete(s.entries, key)
		return idempotencyEntry{}, false
	}
	return e, ok
}

func (s *idempotencyStore) put(key string, e idempotencyEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// Opportunistic prune so the map does not grow unbounded.
	for k, old := range s.entries {
		if time.Since(old.storedAt) > idempotencyTTL {
			delete(s.entries, k)
		}
	}
	s.entries[key] = e
}
