package middleware

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

const (
	idempotenceHeader = "x-idempotence"
	idempotenceTTL    = 60 * time.Second
	// bodies above this size are keyed without their payload
	idempotenceMaxBody = 1 << 20
)

// Idempotence rejects a write that repeats one still in flight or one that
// succeeded within the last minute. A nil client disables the check.
func Idempotence(rdb *redis.Client, skipPaths ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if rdb == nil || !isWriteMethod(c.Request.Method) || shouldSkipIdempotence([]string{c.Request.URL.Path, c.FullPath()}, skipPaths) {
			c.Next()
			return
		}

		key, err := resolveIdempotenceKey(c)
		if err != nil || key == "" {
			c.Next()
			return
		}

		redisKey := fmt.Sprintf("crm:idempotence:%s", key)
		ctx := c.Request.Context()

		val, err := rdb.Get(ctx, redisKey).Result()
		if err == nil {
			msg := "the same request can only be sent once within 60 seconds of succeeding"
			if val == "0" {
				msg = "the same request is still being processed"
			}
			c.AbortWithStatusJSON(http.StatusConflict, gin.H{
				"ok":      0,
				"code":    http.StatusConflict,
				"message": msg,
			})
			return
		}

		if !errors.Is(err, redis.Nil) {
			c.Next()
			return
		}

		if setErr := rdb.Set(ctx, redisKey, "0", idempotenceTTL).Err(); setErr != nil {
			c.Next()
			return
		}

		c.Next()

		status := c.Writer.Status()
		if status >= 200 && status < 300 {
			rdb.Set(ctx, redisKey, "1", redis.KeepTTL)
		} else {
			rdb.Del(ctx, redisKey)
		}
	}
}

func isWriteMethod(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// shouldSkipIdempotence matches the request path and the route pattern
// against skip. An entry ending in "*" matches as a prefix.
func shouldSkipIdempotence(paths []string, skip []string) bool {
	for _, path := range paths {
		p := strings.TrimRight(strings.ToLower(strings.TrimSpace(path)), "/")
		if p == "" {
			continue
		}
		for _, s := range skip {
			s = strings.ToLower(s)
			if prefix, ok := strings.CutSuffix(s, "*"); ok {
				if strings.HasPrefix(p, prefix) {
					return true
				}
				continue
			}
			if p == strings.TrimRight(s, "/") {
				return true
			}
		}
	}
	return false
}

// resolveIdempotenceKey returns the idempotence key for the current request.
func resolveIdempotenceKey(c *gin.Context) (string, error) {
	if hdr := c.GetHeader(idempotenceHeader); hdr != "" {
		return hdr, nil
	}

	var body []byte
	if c.Request.Body != nil && c.Request.ContentLength <= idempotenceMaxBody {
		// ContentLength is -1 for chunked bodies, so the read is bounded too.
		b, err := io.ReadAll(io.LimitReader(c.Request.Body, idempotenceMaxBody+1))
		if err != nil {
			return "", err
		}
		if int64(len(b)) > idempotenceMaxBody {
			c.Request.Body = replayBody{io.MultiReader(bytes.NewReader(b), c.Request.Body), c.Request.Body}
		} else {
			c.Request.Body = io.NopCloser(bytes.NewReader(b))
			body = b
		}
	}

	ua := c.Request.UserAgent()
	ip := c.ClientIP()
	token := ExtractToken(c)

	if len(body) == 0 && ua == "" && ip == "" && token == "" {
		return "", nil
	}

	raw := c.Request.Method + "|" + c.Request.URL.String() + "|" + string(body) + "|" + ua + "|" + ip + "|" + token
	h := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(h[:]), nil
}

// replayBody puts the bytes read for keying back in front of the rest.
type replayBody struct {
	io.Reader
	io.Closer
}
