package parser

import (
	"bytes"
	stderrors "errors" // Standard errors package
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mcncl/dsa/internal/errors" // Custom errors package
	"github.com/mcncl/dsa/internal/models"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// parser is a single-use recursive descent cursor over src.
type parser struct {
	src string
	pos int
}

// ParseString parses a complete JSON document. Anything other than
// whitespace after the top-level value is an error.
func ParseString(src string) (models.Value, error) {
	if strings.TrimSpace(src) == "" {
		return models.Value{}, errors.NewSyntaxError("unexpected end of input at offset 0", errors.ErrEmptyInput)
	}
	p := &parser{src: src}
	v, err := p.parseValue()
	if err != nil {
		return models.Value{}, err
	}
	p.skipWhitespace()
	if p.pos != len(p.src) {
		return models.Value{}, p.errorf("extra characters after JSON value at offset %d", p.pos)
	}
	return v, nil
}

// ParseBytes parses a complete JSON document held in data.
func ParseBytes(data []byte) (models.Value, error) {
	return ParseString(string(data))
}

// Parse reads r to the end and parses the result as one JSON document.
func Parse(reader io.Reader) (models.Value, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Value{}, errors.NewIOError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseFile parses the JSON document stored at filePath. The file is closed
// before parsing starts.
func ParseFile(filePath string) (models.Value, error) {
	data, err := readFile(filePath)
	if err != nil {
		return models.Value{}, err
	}
	return ParseBytes(bytes.TrimPrefix(data, utf8BOM))
}

func readFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewIOError("file path is empty", errors.ErrInvalidFilePath)
	}
	file, err := os.Open(filePath)
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return nil, errors.NewIOError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	defer func() {
		if err := file.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Error closing file: %v\n", err)
		}
	}()

	stat, err := file.Stat()
	if err != nil {
		return nil, errors.NewIOError(
			fmt.Sprintf("failed to get file stats for '%s'", filePath),
			err,
		)
	}
	if stat.IsDir() {
		return nil, errors.NewIOError(
			fmt.Sprintf("'%s' is a directory", filePath),
			errors.ErrInvalidFilePath,
		)
	}
	if stat.Size() == 0 {
		return nil, errors.NewIOError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrFileEmpty,
		)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, errors.NewIOError(fmt.Sprintf("failed to read file '%s'", filePath), err)
	}
	return data, nil
}

func (p *parser) errorf(format string, args ...any) error {
	return errors.NewSyntaxError(fmt.Sprintf(format, args...), errors.ErrInvalidJSON)
}

// describe renders the byte at pos for error messages.
func (p *parser) describe(pos int) string {
	if pos >= len(p.src) {
		return "end of input"
	}
	return strconv.QuoteRuneToASCII(rune(p.src[pos]))
}

// at returns the byte at i, or 0 past the end of the source.
func (p *parser) at(i int) byte {
	if i < len(p.src) {
		return p.src[i]
	}
	return 0
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func (p *parser) skipWhitespace() {
	for p.pos < len(p.src) && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// peek skips whitespace and returns the next byte without consuming it.
// It reports false at end of input.
func (p *parser) peek() (byte, bool) {
	p.skipWhitespace()
	if p.pos < len(p.src) {
		return p.src[p.pos], true
	}
	return 0, false
}

// expect skips whitespace and consumes c.
func (p *parser) expect(c byte) error {
	p.skipWhitespace()
	if p.pos >= len(p.src) || p.src[p.pos] != c {
		return p.errorf("expected '%c' at offset %d, got %s", c, p.pos, p.describe(p.pos))
	}
	p.pos++
	return nil
}

func (p *parser) parseValue() (models.Value, error) {
	c, ok := p.peek()
	if !ok {
		return models.Value{}, p.errorf("unexpected end of input at offset %d", p.pos)
	}
	switch c {
	case '"':
		s, err := p.parseString()
		if err != nil {
			return models.Value{}, err
		}
		return models.NewString(s), nil
	case '{':
		return p.parseObject()
	case '[':
		return p.parseArray()
	case 't':
		if p.consumeLiteral("true") {
			return models.NewBool(true), nil
		}
	case 'f':
		if p.consumeLiteral("false") {
			return models.NewBool(false), nil
		}
	case 'n':
		if p.consumeLiteral("null") {
			return models.NewNull(), nil
		}
	default:
		if c == '-' || isDigit(c) {
			n, err := p.parseNumber()
			if err != nil {
				return models.Value{}, err
			}
			return models.NewNumber(n), nil
		}
	}
	return models.Value{}, p.errorf("unexpected character %s at offset %d", p.describe(p.pos), p.pos)
}

func (p *parser) consumeLiteral(lit string) bool {
	if strings.HasPrefix(p.src[p.pos:], lit) {
		p.pos += len(lit)
		return true
	}
	return false
}

// parseString decodes a quoted string. A \u escape is not decoded: the two
// characters `\u` and up to four following source bytes are kept verbatim.
func (p *parser) parseString() (string, error) {
	if err := p.expect('"'); err != nil {
		return "", err
	}
	var sb strings.Builder
	for p.pos < len(p.src) && p.src[p.pos] != '"' {
		c := p.src[p.pos]
		if c != '\\' {
			sb.WriteByte(c)
			p.pos++
			continue
		}
		p.pos++
		if p.pos >= len(p.src) {
			return "", p.errorf("unterminated escape sequence at offset %d", p.pos-1)
		}
		switch esc := p.src[p.pos]; esc {
		case '"', '\\', '/':
			sb.WriteByte(esc)
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'u':
			sb.WriteString(`\u`)
			for i := 0; i < 4 && p.pos+1 < len(p.src); i++ {
				p.pos++
				sb.WriteByte(p.src[p.pos])
			}
		default:
			return "", p.errorf("invalid escape sequence '\\%c' at offset %d", esc, p.pos-1)
		}
		p.pos++
	}
	if p.pos >= len(p.src) {
		return "", p.errorf("unterminated string at offset %d", p.pos)
	}
	p.pos++
	return sb.String(), nil
}

// parseNumber scans -?(0|[1-9][0-9]*)(\.[0-9]+)?([eE][+-]?[0-9]+)? and
// converts it with strconv.ParseFloat.
func (p *parser) parseNumber() (float64, error) {
	start := p.pos
	if p.at(p.pos) == '-' {
		p.pos++
	}
	if !isDigit(p.at(p.pos)) {
		return 0, p.errorf("invalid number at offset %d: expected digit, got %s", start, p.describe(p.pos))
	}
	if p.at(p.pos) == '0' {
		p.pos++
	} else {
		for isDigit(p.at(p.pos)) {
			p.pos++
		}
	}
	if p.at(p.pos) == '.' {
		p.pos++
		if !isDigit(p.at(p.pos)) {
			return 0, p.errorf("invalid number at offset %d: expected digit after '.', got %s", start, p.describe(p.pos))
		}
		for isDigit(p.at(p.pos)) {
			p.pos++
		}
	}
	if c := p.at(p.pos); c == 'e' || c == 'E' {
		p.pos++
		if c := p.at(p.pos); c == '+' || c == '-' {
			p.pos++
		}
		if !isDigit(p.at(p.pos)) {
			return 0, p.errorf("invalid number at offset %d: expected digit in exponent, got %s", start, p.describe(p.pos))
		}
		for isDigit(p.at(p.pos)) {
			p.pos++
		}
	}
	lit := p.src[start:p.pos]
	n, err := strconv.ParseFloat(lit, 64)
	if err != nil {
		return 0, errors.NewSyntaxError(fmt.Sprintf("number %s at offset %d is out of range", lit, start), err)
	}
	return n, nil
}

func (p *parser) parseObject() (models.Value, error) {
	if err := p.expect('{'); err != nil {
		return models.Value{}, err
	}
	obj := models.NewObject()
	if c, ok := p.peek(); ok && c == '}' {
		p.pos++
		return models.NewObjectValue(obj), nil
	}
	for {
		key, err := p.parseString()
		if err != nil {
			return models.Value{}, err
		}
		if err := p.expect(':'); err != nil {
			return models.Value{}, err
		}
		v, err := p.parseValue()
		if err != nil {
			return models.Value{}, err
		}
		obj.Set(key, v)

		c, ok := p.peek()
		if ok && c == '}' {
			p.pos++
			return models.NewObjectValue(obj), nil
		}
		if !ok || c != ',' {
			return models.Value{}, p.errorf("expected ',' or '}' in object at offset %d, got %s", p.pos, p.describe(p.pos))
		}
		p.pos++
	}
}

func (p *parser) parseArray() (models.Value, error) {
	if err := p.expect('['); err != nil {
		return models.Value{}, err
	}
	arr := []models.Value{}
	if c, ok := p.peek(); ok && c == ']' {
		p.pos++
		return models.NewArray(arr...), nil
	}
	for {
		v, err := p.parseValue()
		if err != nil {
			return models.Value{}, err
		}
		arr = append(arr, v)

		c, ok := p.peek()
		if ok && c == ']' {
			p.pos++
			return models.NewArray(arr...), nil
		}
		if !ok || c != ',' {
			return models.Value{}, p.errorf("expected ',' or ']' in array at offset %d, got %s", p.pos, p.describe(p.pos))
		}
		p.pos++
	}
}
