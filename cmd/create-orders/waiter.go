package main

import "sync"

// Waiter runs functions in goroutines and keeps the first error they return.
type Waiter struct {
	wg   sync.WaitGroup
	once sync.Once
	err  error
}

func (w *Waiter) Go(f func() error) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if err := f(); err != nil {
			w.once.Do(func() { w.err = err })
		}
	}()
}

func (w *Waiter) Wait() error {
	w.wg.Wait()
	return w.err
}
