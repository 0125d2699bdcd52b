package converter

import (
	"fmt"
	"path/filepath"
	"strings"

	"source.hodakov.me/hdkv/avweb/internal/domains/converter/dto"
)

// Codec and bitrate flags placed between the input and the output.
var presets = map[dto.Kind][]string{
	dto.KindMP4: {
		"-c:a", "libvo_aacenc",
		"-ab", "128k",
		"-ar", "48k",
		"-c:v", "libx264",
		"-tune", "film",
		"-preset", "slow",
	},
	dto.KindOGG: {
		"-c:a", "libvorbis",
		"-ab", "128k",
		"-c:v", "libtheora",
	},
	dto.KindWebM: {
		"-c:a", "libvorbis",
		"-ab", "128k",
		"-c:v", "libvpx",
		"-deadline", "best",
	},
	dto.KindMP3: {
		"-c:a", "libmp3lame",
		"-ab", "128k",
		"-ar", "48k",
	},
	dto.KindM4A: {
		"-c:a", "libvo_aacenc",
		"-ab", "64k",
		"-ar", "48k",
	},
}

// Kinds returns the supported output kinds.
func Kinds() []dto.Kind {
	return []dto.Kind{dto.KindMP4, dto.KindOGG, dto.KindWebM, dto.KindMP3, dto.KindM4A}
}

// ParseKind maps a user-supplied name like "WebM" or ".mp3" to a kind.
func ParseKind(name string) (dto.Kind, error) {
	kind := dto.Kind(strings.ToLower(strings.TrimPrefix(strings.TrimSpace(name), ".")))

	if _, ok := presets[kind]; !ok {
		return "", fmt.Errorf("%w: %w (%q)", ErrConverter, ErrUnknownKind, name)
	}

	return kind, nil
}

// Preset returns a copy of the codec flags used for kind.
func Preset(kind dto.Kind) ([]string, error) {
	flags, ok := presets[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %w (%q)", ErrConverter, ErrUnknownKind, kind)
	}

	return append([]string(nil), flags...), nil
}

// OutputPath replaces the input's extension with the kind's one, keeping the
// directory. A leading dot doesn't start an extension: ".bashrc" becomes
// ".bashrc.mp4".
func OutputPath(kind dto.Kind, inputPath string) string {
	ext := filepath.Ext(inputPath)
	if ext == filepath.Base(inputPath) {
		ext = ""
	}

	return strings.TrimSuffix(inputPath, ext) + "." + string(kind)
}

// BuildArguments returns the full transcoder argument list and the resolved
// output path: -i <input> <preset> -y <output> <extra...>.
func BuildArguments(kind dto.Kind, inputPath string, options *dto.Options) ([]string, string, error) {
	if inputPath == "" {
		return nil, "", fmt.Errorf("%w: %w", ErrConverter, ErrEmptyInput)
	}

	flags, err := Preset(kind)
	if err != nil {
		return nil, "", err
	}

	if options == nil {
		options = new(dto.Options)
	}

	outputPath := options.OutputPath
	if outputPath == "" {
		outputPath = OutputPath(kind, inputPath)
	}

	arguments := make([]string, 0, len(flags)+len(options.ExtraArgs)+4)
	arguments = append(arguments, "-i", inputPath)
	arguments = append(arguments, flags...)
	arguments = append(arguments, "-y", outputPath)
	arguments = append(arguments, options.ExtraArgs...)

	return arguments, outputPath, nil
}
