package main

import "github.com/Catskill909/radio-sub001/cmd"

// @title           Radio Calendar API
// @version         1.0.0
// @description     Broadcast calendar with automated stream recording and audio editing
// @contact.name    API Support
// @contact.url     https://github.com/Catskill909/radio-sub001
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:8080
// @BasePath        /
// @schemes         http https
func main() {
	cmd.Execute()
}
