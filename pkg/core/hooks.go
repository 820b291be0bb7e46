package core

// UseController registers controller for disposal with bag and returns it.
//
// Example:
//
//	c.value = core.UseController(&c.DisposeBag, core.NewEmptyValueController[string]())
func UseController[C Disposable](bag *DisposeBag, controller C) C {
	bag.OnDispose(controller.Dispose)
	return controller
}

// UseListenable subscribes fn to listenable. The subscription is removed when
// bag is disposed.
func UseListenable(bag *DisposeBag, listenable Listenable, fn func()) {
	unsub := listenable.AddListener(fn)
	bag.OnDispose(unsub)
}
