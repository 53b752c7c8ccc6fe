// fatdump inspects FAT32 disk images and devices without mounting them
package main

import (
	"os"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
