package main

import (
	"context"
	"crypto/tls"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	mw "github.com/protim1451/library-lending-api/internal/api/middlewares"
	"github.com/protim1451/library-lending-api/internal/api/router"
	"github.com/protim1451/library-lending-api/internal/metrics/lendqueue"
	"github.com/protim1451/library-lending-api/internal/repository/sqlconnect"
)

func main() {
	_ = godotenv.Load()

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}

	db, err := sqlconnect.ConnectDB()
	if err != nil {
		log.Fatalf("Postgres connection failed: %v", err)
	}
	defer db.Close()
	log.Println("Connected to Postgres")

	rdb := connectRedis()
	if rdb != nil {
		defer rdb.Close()
	}

	lendqueue.Start(db, 10000, 2)

	handler := router.Router(db, rdb)
	chain := []func(http.Handler) http.Handler{
		mw.Cors,
		mw.RequestID,
		mw.ResponseTime,
		mw.SecurityHeaders,
		mw.BodySizeLimit,
		mw.Recovery,
	}
	if rdb != nil {
		tb := mw.NewRedisTokenBucket(rdb, 5, 20, mw.PerIPKey("tb"))
		chain = append(chain, tb.Middleware)
	}
	// outermost first
	for i := len(chain) - 1; i >= 0; i-- {
		handler = chain[i](handler)
	}

	server := &http.Server{
		Addr:              ":" + port,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Println("server is running on port:", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Error starting server: %v", err)
		}
	}()

	stop, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	log.Println("shutting down")
	ctx, cancelTO := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelTO()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	lendqueue.Shutdown()
}

// connectRedis is optional wiring: without Redis the API runs with rate
// limiting and the category cache disabled.
func connectRedis() *redis.Client {
	var rdb *redis.Client

	if url := os.Getenv("REDIS_URL"); url != "" {
		opt, err := redis.ParseURL(url)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		if opt.TLSConfig == nil && os.Getenv("REDIS_TLS") == "1" {
			opt.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
		}
		opt.DialTimeout = 5 * time.Second
		opt.ReadTimeout = 1 * time.Second
		opt.WriteTimeout = 1 * time.Second
		rdb = redis.NewClient(opt)
	} else if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{
			Addr:         addr,
			Username:     os.Getenv("REDIS_USER"),
			Password:     os.Getenv("REDIS_PASSWORD"),
			DialTimeout:  2 * time.Second,
			ReadTimeout:  500 * time.Millisecond,
			WriteTimeout: 500 * time.Millisecond,
		})
	} else {
		log.Println("Redis not configured; rate limiting and category cache disabled")
		return nil
	}

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("Redis connection failed: %v", err)
	}
	log.Println("Connected to Redis")
	return rdb
}
