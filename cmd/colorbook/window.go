package main

import (
	"fmt"
	"log"

	"github.com/example/colorbook/internal/appstate"
)

func (c *openCmd) Run() error {
	tools, err := c.tf.state()
	if err != nil {
		return fmt.Errorf("open: %w", err)
	}
	sess, err := c.src.open(tools)
	if err != nil {
		return err
	}
	opts := []appstate.Option{
		appstate.WithSession(sess),
		appstate.WithTheme(c.root.activeTheme),
		appstate.WithExporter(c.root.exporter()),
		appstate.WithNotifier(c.root.notifier),
		appstate.WithTitle(fmt.Sprintf("%s - %s", c.root.appName(), sess.Name())),
	}
	if store, err := c.root.gallery(); err != nil {
		log.Printf("gallery disabled: %v", err)
	} else {
		opts = append(opts, appstate.WithGallery(store))
	}
	appstate.New(opts...).Run()
	return nil
}
