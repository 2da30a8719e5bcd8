// Package observable provides wrapper components for instrumenting command and query handlers
// with metrics and logging while keeping business logic pure.
//
// The wrappers are applied externally at wiring time:
//
//	coreHandler := changebookstatus.NewCommandHandler(store)
//
//	observableHandler, err := observable.NewCommandWrapper[changebookstatus.Command](
//		coreHandler,
//		observable.WithCommandMetrics[changebookstatus.Command](metricsCollector),
//		observable.WithCommandContextualLogging[changebookstatus.Command](logger),
//	)
//
//	result, err := observableHandler.Handle(ctx, command)
//
// For unit tests focused on business logic, use the handlers without wrapping them.
package observable
