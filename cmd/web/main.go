package main

import (
	"notifyhub_backend/internal/app"
)

func main() {
	app.Run()
}
