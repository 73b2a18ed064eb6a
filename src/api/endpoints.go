package api

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sapessi/nearly-divisionless-rand/src/rng"
)

// BoundedUint64 serves the core operation directly: a uniform integer in
// [0, bound) for an arbitrary 64-bit bound.
func (h *Handlers) BoundedUint64(c *gin.Context) {
	boundStr := c.Query("bound")
	bound, err := strconv.ParseUint(boundStr, 10, 64)
	if err != nil {
		responder{c}.err(http.StatusBadRequest,
			"Bound must be an unsigned 64-bit integer.")
		return
	}

	h.handleRNG(c, func() (string, gin.H, int, string) {
		v, err := rng.Uint64n(h.r, h.health, bound)
		if err != nil {
			if rng.IsSourceError(err) {
				h.log.Error(err)
				return "", nil, http.StatusInternalServerError, "Error fetching random bytes."
			}
			return "", nil, http.StatusBadRequest, err.Error()
		}

		return strconv.FormatUint(v, 10),
			gin.H{"number": v, "bound": bound},
			0, ""
	})
}

func (h *Handlers) RandomNumber(c *gin.Context) {
	min, err := strconv.ParseInt(c.DefaultQuery("min", "1"), 10, 64)
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid min value.")
		return
	}

	max, err := strconv.ParseInt(c.DefaultQuery("max", "100"), 10, 64)
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid max value.")
		return
	}

	h.handleRNG(c, func() (string, gin.H, int, string) {
		n, err := rng.UniformInt64(h.r, h.health, min, max)
		if err != nil {
			if rng.IsSourceError(err) {
				h.log.Error(err)
				return "", nil, http.StatusInternalServerError, "Error fetching random bytes."
			}
			return "", nil, http.StatusBadRequest, err.Error()
		}

		return fmt.Sprintf("%d", n),
			gin.H{"number": n, "min": min, "max": max},
			0, ""
	})
}

func (h *Handlers) RandomBytes(c *gin.Context) {
	const maxSize = 256

	sizeVar := c.DefaultQuery("size", "1")
	size, err := strconv.Atoi(sizeVar)
	if err != nil || size < 1 || size > maxSize {
		responder{c}.err(http.StatusBadRequest,
			fmt.Sprintf("Size must be an integer between 1 and %d.", maxSize))
		return
	}

	h.handleRNG(c, func() (string, gin.H, int, string) {
		buf := make([]byte, size)
		if _, err := io.ReadFull(h.r, buf); err != nil {
			if h.health != nil {
				h.health.Set(false, "error fetching random bytes: "+err.Error())
			}
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError, "Error fetching random bytes."
		}

		hex := fmt.Sprintf("%x", buf)
		return hex, gin.H{"bytes": hex, "size": size}, 0, ""
	})
}

func (h *Handlers) RandomStrings(c *gin.Context) {
	const maxSize = 256

	size, err := strconv.Atoi(c.DefaultQuery("size", "10"))
	if err != nil || size < 1 || size > maxSize {
		responder{c}.err(http.StatusBadRequest, "Invalid size.")
		return
	}

	lowers, err := strconv.ParseBool(c.DefaultQuery("lowercase", "true"))
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid lowercase flag.")
		return
	}

	uppers, err := strconv.ParseBool(c.DefaultQuery("uppercase", "true"))
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid uppercase flag.")
		return
	}

	numbers, err := strconv.ParseBool(c.DefaultQuery("numbers", "true"))
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid numbers flag.")
		return
	}

	symbols, err := strconv.ParseBool(c.DefaultQuery("symbols", "true"))
	if err != nil {
		responder{c}.err(http.StatusBadRequest, "Invalid symbols flag.")
		return
	}

	if !lowers && !uppers && !numbers && !symbols {
		responder{c}.err(http.StatusBadRequest, "At least one flag must be set.")
		return
	}

	h.handleRNG(c, func() (string, gin.H, int, string) {
		charset := rng.BuildCharset(lowers, uppers, numbers, symbols)
		s, err := rng.StringFromCharset(h.r, h.health, charset, size)
		if err != nil {
			h.log.Error(err)
			return "", nil, http.StatusInternalServerError,
				"Error fetching a random character."
		}

		return s, gin.H{
			"string":    s,
			"size":      size,
			"lowercase": lowers,
			"uppercase": uppers,
			"numbers":   numbers,
			"symbols":   symbols,
		}, 0, ""
	})
}

func (h *Handlers) Health(c *gin.Context) {
	if h.health == nil {
		responder{c}.err(http.StatusServiceUnavailable, "UNHEALTHY: missing health monitor")
		return
	}

	ok, msg, t := h.health.Snapshot()
	if ok {
		responder{c}.ok(
			fmt.Sprintf("OK (last checked %s)", t.Format(time.RFC3339)),
			gin.H{"ok": true, "last_checked": t.Format(time.RFC3339)},
			"health-check",
		)
		return
	}

	responder{c}.err(http.StatusServiceUnavailable,
		fmt.Sprintf("UNHEALTHY: %s (last checked %s)", msg, t.Format(time.RFC3339)))
}
