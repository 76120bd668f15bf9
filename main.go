package main

import (
	"log"

	"github.com/Tjindl/HackTheCoast-sub000/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
