package main

import "github.com/Egor213/LogiSense/internal/app"

func main() {
	app.RunEnhancer()
}
