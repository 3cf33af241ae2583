//go:build ignore

package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/place-resolver/internal/domain"
)

func main() {
	redisAddr := flag.String("redis", "localhost:6379", "Redis address for streams")
	city := flag.String("city", "Beverly Hills", "city")
	state := flag.String("state", "CA", "state or subdivision code")
	country := flag.String("country", "US", "country name or alpha2/alpha3")
	postal := flag.String("postal", "", "postal code")
	lang := flag.String("lang", "eng", "result language")
	flag.Parse()

	client := redis.NewClient(&redis.Options{
		Addr: *redisAddr,
	})
	defer client.Close()

	ctx := context.Background()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}

	event := domain.ResolveEvent{
		RequestID:  uuid.New(),
		City:       *city,
		State:      *state,
		Country:    *country,
		PostalCode: *postal,
		Lang:       *lang,
	}

	data, err := json.Marshal(event)
	if err != nil {
		log.Fatalf("Failed to marshal event: %v", err)
	}

	result, err := client.XAdd(ctx, &redis.XAddArgs{
		Stream: domain.StreamPlaceResolve,
		Values: map[string]interface{}{
			"data": string(data),
		},
	}).Result()
	if err != nil {
		log.Fatalf("Failed to publish event: %v", err)
	}

	fmt.Printf("Event published\n")
	fmt.Printf("   Stream: %s\n", domain.StreamPlaceResolve)
	fmt.Printf("   Message ID: %s\n", result)
	fmt.Printf("   Request ID: %s\n", event.RequestID)

	fmt.Printf("\nWaiting for response in %s...\n", domain.StreamPlaceResolved)

	timeout := time.After(30 * time.Second)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	lastID := "0"
	for {
		select {
		case <-timeout:
			fmt.Println("Timeout waiting for response")
			return
		case <-ticker.C:
			streams, err := client.XRead(ctx, &redis.XReadArgs{
				Streams: []string{domain.StreamPlaceResolved, lastID},
				Count:   100,
				Block:   -1,
			}).Result()
			if err != nil && !errors.Is(err, redis.Nil) {
				continue
			}

			for _, stream := range streams {
				for _, msg := range stream.Messages {
					lastID = msg.ID
					dataStr, ok := msg.Values["data"].(string)
					if !ok {
						continue
					}

					var done domain.ResolveDoneEvent
					if err := json.Unmarshal([]byte(dataStr), &done); err != nil {
						continue
					}
					if done.RequestID != event.RequestID {
						continue
					}

					fmt.Printf("\nResponse received\n")
					pretty, _ := json.MarshalIndent(done, "", "  ")
					fmt.Printf("%s\n", pretty)
					return
				}
			}
		}
	}
}
