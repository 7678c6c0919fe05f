package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gdqwidget/model"
	"gdqwidget/render"

	"github.com/tidwall/pretty"
)

func writeView(w io.Writer, view model.View, asJSON bool) error {
	if !asJSON {
		return render.WriteText(w, view)
	}
	data, err := json.Marshal(view)
	if err != nil {
		return fmt.Errorf("failed to marshal view: %w", err)
	}
	_, err = w.Write(pretty.Pretty(data))
	return err
}
