package main

import "yt-media-fetch/cmd"

func main() {
	cmd.Execute()
}
