package domains

import "source.hodakov.me/hdkv/avweb/internal/domains/converter/dto"

const ConverterName = "converter"

type Converter interface {
	Convert(kind dto.Kind, inputPath string, options *dto.Options) (string, error)
}
