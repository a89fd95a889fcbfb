// internal/app/features/announcements/form.go
package announcements

import (
	"net/http"
	"strings"

	"github.com/dalemusser/educonnect/internal/app/system/httpjson"
)

// parseForm reads an announcementForm from either a multipart form (the
// browser upload path) or a JSON body.
func parseForm(w http.ResponseWriter, r *http.Request) (announcementForm, error) {
	var form announcementForm

	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxImageBytes); err != nil {
			return form, err
		}
		form.ClassroomID = r.FormValue("classroom_id")
		form.Heading = r.FormValue("heading")
		form.Text = r.FormValue("text")

		file, header, err := r.FormFile("image")
		if err == nil {
			data, ext, err := readImagePart(file, header)
			if err != nil {
				return form, err
			}
			form.imageData = data
			form.imageExt = ext
			form.hasImage = true
		} else if err != http.ErrMissingFile {
			return form, err
		}
		return form, nil
	}

	err := httpjson.Decode(w, r, &form)
	return form, err
}
