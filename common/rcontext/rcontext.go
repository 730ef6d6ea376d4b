package rcontext

import (
	"context"

	"github.com/sirupsen/logrus"
)

func Initial() RequestContext {
	return RequestContext{
		Context: context.Background(),
		Log:     logrus.WithFields(logrus.Fields{"nocontext": true}),
	}.populate()
}

type RequestContext struct {
	context.Context

	// Also stored on the context object itself
	Log *logrus.Entry // imgdoc.logger
}

func (c RequestContext) populate() RequestContext {
	c.Context = context.WithValue(c.Context, "imgdoc.logger", c.Log)
	return c
}

func (c RequestContext) ReplaceLogger(log *logrus.Entry) RequestContext {
	ctx := context.WithValue(c.Context, "imgdoc.logger", log)
	return RequestContext{
		Context: ctx,
		Log:     log,
	}
}

func (c RequestContext) LogWithFields(fields logrus.Fields) RequestContext {
	return c.ReplaceLogger(c.Log.WithFields(fields))
}
