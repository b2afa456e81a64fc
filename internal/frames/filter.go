package frames

import (
	"context"
	"fmt"
	"os/exec"
)

// Filter is the external content filter collaborator: it renders a blurred
// copy of inputPath at outputPath.
type Filter interface {
	Apply(ctx context.Context, inputPath string, radius int, outputPath string) error
}

const convertBin = "convert"

// ImageMagick blurs images by shelling out to ImageMagick's convert tool.
type ImageMagick struct{}

// Available reports whether the convert binary can be found. Called before
// any generation so a missing tool fails the whole startup, not one frame.
func (ImageMagick) Available() error {
	if _, err := exec.LookPath(convertBin); err != nil {
		return fmt.Errorf("required external tool %q not found, ensure imagemagick is installed: %w", convertBin, err)
	}
	return nil
}

func (ImageMagick) Apply(ctx context.Context, inputPath string, radius int, outputPath string) error {
	cmd := exec.CommandContext(ctx, convertBin, inputPath, "-blur", fmt.Sprintf("0x%d", radius), outputPath)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("convert failed for %s: %w: %s", outputPath, err, out)
	}
	return nil
}
