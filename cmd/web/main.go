package main

import "vfxhub_backend/internal/app"

func main() {
	app.Run()
}
