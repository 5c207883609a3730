package main

import (
	"fmt"
	"net/http"
	"os"
	"time"
)

// Polls the health endpoint until the server answers. Useful as a gate in
// compose setups before running the migration or the client.
func main() {
	url := "http://localhost:5000/api/health"
	if len(os.Args) > 1 {
		url = os.Args[1]
	}
	totalWaitTime := 0
	for {
		res, err := http.Get(url)
		if err == nil {
			if res.StatusCode == http.StatusOK {
				fmt.Println(res.Status)
				break
			}
			fmt.Println(res.Status)
		} else {
			fmt.Println(err)
		}
		totalWaitTime += 5
		fmt.Printf("Waiting %d seconds\n", totalWaitTime)
		time.Sleep(5 * time.Second)
	}
}
