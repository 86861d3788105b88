package utils

import (
	"fmt"
	"io"
)

func DisplayError(w io.Writer, message string) {
	fmt.Fprintln(w, Red("❌ Error: "+message))
}

func DisplaySuccess(w io.Writer, message string) {
	fmt.Fprintln(w, Green("✅ "+message))
}

func DisplayInfo(w io.Writer, message string) {
	fmt.Fprintln(w, Blue("ℹ️  "+message))
}

func DisplayWarning(w io.Writer, message string) {
	fmt.Fprintln(w, Yellow("⚠️  "+message))
}
