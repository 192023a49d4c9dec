package main

import (
	"github.com/BlazeZheng/simple-nas-music-player/cmd"
)

func main() {
	cmd.Execute()
}
