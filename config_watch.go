package main

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
)

func Watch(path string, configs chan<- *Config, errs chan<- error, done <-chan struct{}) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("can't create watcher: %w", err)
	}
	go func() {
	loop:
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					break loop
				}
				// editors often replace the file rather than write to it
				if event.Op&(fsnotify.Write|fsnotify.Rename|fsnotify.Create) > 0 {
					c, err := reloadConfig(path)
					if err != nil {
						errs <- err
						continue loop
					}
					if c == nil {
						// replaced but not yet in place
						continue loop
					}
					log.Printf("config: reloaded %s", path)
					configs <- c
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					break loop
				}
				errs <- err
			case <-done:
				break loop
			}
		}
		// ignore close error
		watcher.Close()
	}()
	if err := watcher.Add(path); err != nil {
		return err
	}
	return nil
}

// reloadConfig reads the config at path without creating it. It returns nil
// without an error when the file is missing.
func reloadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("can't read config: %w", err)
	}
	return parseConfig(data)
}
