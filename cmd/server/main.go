package main

import "petadopt-backend/internal/app"

func main() {
	app.Run()
}
