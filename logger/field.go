package logger

import "fmt"

type Field interface {
	Key() string
	String() string
}

type Fields []Field

type GenericField struct {
	key    string
	value  any
	format string
}

func (f GenericField) Key() string {
	return f.key
}

func (f GenericField) String() string {
	return fmt.Sprintf(f.format, f.value)
}

func StringField(key, value string) Field {
	return GenericField{
		key:    key,
		value:  value,
		format: "%s",
	}
}

func IntField(key string, value int) Field {
	return GenericField{
		key:    key,
		value:  value,
		format: "%d",
	}
}

func BoolField(key string, value bool) Field {
	return GenericField{
		key:    key,
		value:  value,
		format: "%t",
	}
}
