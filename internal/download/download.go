// Package download provides secure ffmpeg-based media downloading.
// Uses exec.Command with explicit argument slices and validates
// output paths against directory traversal attacks.
package download

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pelisplus/internal/httputil"
	"pelisplus/internal/logging"
	"pelisplus/internal/media"
)

// Download fetches a video to a local .mkv file using ffmpeg and returns
// the written path.
func Download(ctx context.Context, video media.Video, title, outputDir string, logger *log.Logger) (string, error) {
	// Validate ffmpeg is available
	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", fmt.Errorf("ffmpeg not found in PATH: %w", err)
	}

	outputPath, err := OutputPath(outputDir, title)
	if err != nil {
		return "", err
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, ffmpegArgs(video, title, outputPath)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if logger == nil {
		logger = logging.Discard()
	}
	logger.Info("downloading", "title", title, "to", outputPath)

	if err := cmd.Run(); err != nil {
		// Clean up partial download on failure
		os.Remove(outputPath)
		return "", fmt.Errorf("ffmpeg download failed: %w", err)
	}

	return outputPath, nil
}

// OutputPath creates outputDir if needed and returns the sanitized
// destination for title inside it.
func OutputPath(outputDir, title string) (string, error) {
	absDir, err := filepath.Abs(outputDir)
	if err != nil {
		return "", fmt.Errorf("resolving output directory: %w", err)
	}
	if err := os.MkdirAll(absDir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	filename := httputil.SanitizeFilename(title) + ".mkv"
	outputPath, err := httputil.SafeDownloadPath(absDir, filename)
	if err != nil {
		return "", fmt.Errorf("invalid output path: %w", err)
	}
	return outputPath, nil
}

// ffmpegArgs builds the stream-copy command line. Request headers must
// precede the input they apply to.
func ffmpegArgs(video media.Video, title, outputPath string) []string {
	args := []string{"-y", "-user_agent", httputil.UserAgent}

	if len(video.Headers) > 0 {
		var b strings.Builder
		for name, values := range video.Headers {
			if strings.EqualFold(name, "User-Agent") {
				continue
			}
			for _, v := range values {
				fmt.Fprintf(&b, "%s: %s\r\n", name, v)
			}
		}
		if b.Len() > 0 {
			args = append(args, "-headers", b.String())
		}
		if ua := video.Headers.Get("User-Agent"); ua != "" {
			args[2] = ua
		}
	}

	return append(args,
		"-i", video.URL,
		"-c:v", "copy", // Copy video stream (no re-encoding)
		"-c:a", "copy", // Copy audio stream
		"-metadata", fmt.Sprintf("title=%s", title),
		outputPath,
	)
}
