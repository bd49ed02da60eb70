package logger

import (
	"os"
	"sort"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger define a interface para logging estruturado.
// A aplicação (Handler, Service, Repository) deve depender apenas desta interface.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error)
	Fatal(msg string, err error)
	// With devolve um Logger filho que anexa os campos a todas as entradas.
	With(fields map[string]interface{}) Logger
	Sync() error
}

// ZapLogger é a implementação concreta da interface Logger sobre o zap,
// com saída JSON estruturada.
type ZapLogger struct {
	l *zap.Logger
}

// NewLogger cria e retorna uma nova instância do Logger com saída JSON no stdout.
// Níveis aceitos: debug, info, warn, error. Valores desconhecidos caem para info.
func NewLogger(level string) Logger {
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.MessageKey = "message"
	encCfg.EncodeTime = zapcore.RFC3339TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encCfg),
		zapcore.Lock(os.Stdout),
		parseLevel(level),
	)
	return NewWithCore(core)
}

// NewWithCore permite injetar um core próprio (usado em testes com o observer do zap).
func NewWithCore(core zapcore.Core) Logger {
	return &ZapLogger{l: zap.New(core)}
}

// NewNop devolve um Logger que descarta tudo.
func NewNop() Logger {
	return &ZapLogger{l: zap.NewNop()}
}

func parseLevel(level string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// toZapFields converte o mapa de campos em zap.Field, em ordem alfabética de chave.
func toZapFields(fields map[string]interface{}) []zap.Field {
	if len(fields) == 0 {
		return nil
	}
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, k := range keys {
		out = append(out, zap.Any(k, fields[k]))
	}
	return out
}

func (l *ZapLogger) Debug(msg string, fields map[string]interface{}) {
	l.l.Debug(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Info(msg string, fields map[string]interface{}) {
	l.l.Info(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Warn(msg string, fields map[string]interface{}) {
	l.l.Warn(msg, toZapFields(fields)...)
}

func (l *ZapLogger) Error(msg string, err error) {
	l.l.Error(msg, zap.Error(err))
}

// Fatal registra a entrada e encerra o processo.
func (l *ZapLogger) Fatal(msg string, err error) {
	l.l.Fatal(msg, zap.Error(err))
}

func (l *ZapLogger) With(fields map[string]interface{}) Logger {
	return &ZapLogger{l: l.l.With(toZapFields(fields)...)}
}

func (l *ZapLogger) Sync() error {
	return l.l.Sync()
}
