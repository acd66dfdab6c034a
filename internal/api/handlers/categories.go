package handlers

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/protim1451/library-lending-api/internal/api/httpx"
)

const categoriesCacheKey = "categories:names"

// CategoriesHandler lists category names. The list is tiny and almost never
// changes, so it sits in Redis with a short TTL; any cache failure falls
// straight through to Postgres.
func CategoriesHandler(db *sql.DB, rdb *redis.Client) http.HandlerFunc {
	ttl := 10 * time.Minute
	if v := os.Getenv("CATEGORY_CACHE_TTL"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	return func(w http.ResponseWriter, r *http.Request) {
		if rdb != nil {
			if raw, err := rdb.Get(r.Context(), categoriesCacheKey).Bytes(); err == nil {
				var names []string
				if json.Unmarshal(raw, &names) == nil {
					httpx.OK(w, names)
					return
				}
			}
		}

		rows, err := db.QueryContext(r.Context(), `SELECT name FROM categories ORDER BY name`)
		if err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}
		defer rows.Close()

		names := []string{}
		for rows.Next() {
			var n string
			if err := rows.Scan(&n); err != nil {
				httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch categories")
				return
			}
			names = append(names, n)
		}
		if err := rows.Err(); err != nil {
			httpx.ErrorJSON(w, http.StatusInternalServerError, "Failed to fetch categories")
			return
		}

		if rdb != nil {
			if raw, err := json.Marshal(names); err == nil {
				if err := rdb.Set(r.Context(), categoriesCacheKey, raw, ttl).Err(); err != nil {
					log.Printf("[CACHE] categories set failed: %v", err)
				}
			}
		}

		httpx.OK(w, names)
	}
}
