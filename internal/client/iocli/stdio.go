package iocli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// Stdio реализует IO поверх произвольных потоков.
// Пароль читается без эха, только если вход - терминал.
type Stdio struct {
	in     *bufio.Reader
	out    io.Writer
	inFile *os.File
}

// NewStdio создает IO для os.Stdin/os.Stdout
func NewStdio() IO {
	return NewStreams(os.Stdin, os.Stdout)
}

// NewStreams создает IO для заданных потоков (cobra: cmd.InOrStdin, cmd.OutOrStdout)
func NewStreams(in io.Reader, out io.Writer) IO {
	s := &Stdio{in: bufio.NewReader(in), out: out}
	if f, ok := in.(*os.File); ok {
		s.inFile = f
	}
	return s
}

func (s *Stdio) Println(a ...any) {
	_, _ = fmt.Fprintln(s.out, a...)
}

func (s *Stdio) Printf(format string, a ...any) {
	_, _ = fmt.Fprintf(s.out, format, a...)
}

func (s *Stdio) Write(p []byte) (int, error) {
	return s.out.Write(p)
}

func (s *Stdio) ReadInput(prompt string) (string, error) {
	s.Printf("%s", prompt)
	input, err := s.in.ReadString('\n')
	if err != nil && (err != io.EOF || input == "") {
		return "", err
	}
	return strings.TrimSpace(input), nil
}

func (s *Stdio) ReadPassword(prompt string) (string, error) {
	if s.inFile == nil || !term.IsTerminal(int(s.inFile.Fd())) {
		return s.ReadInput(prompt)
	}

	s.Printf("%s", prompt)
	pwBytes, err := term.ReadPassword(int(s.inFile.Fd()))
	s.Println("")
	if err != nil {
		return "", err
	}
	return string(pwBytes), nil
}

// Confirm задает вопрос да/нет; по умолчанию "нет"
func (s *Stdio) Confirm(prompt string) (bool, error) {
	answer, err := s.ReadInput(prompt + " [y/N]: ")
	if err != nil {
		return false, err
	}
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
