package handlers

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"civicposts/internal/service"
)

func (h *Handlers) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	callerID := currentUserID(r)
	if callerID == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	// по лимиту на файл: лишнее отсечёт валидация конкретного файла
	r.Body = http.MaxBytesReader(w, r.Body, 20*h.Cfg.MaxUploadSize)

	if err := r.ParseMultipartForm(h.Cfg.MaxUploadSize); err != nil {
		if err.Error() == "http: request body too large" {
			WriteError(w, "Запрос слишком большой", http.StatusBadRequest)
		} else {
			WriteError(w, "Ошибка при обработке формы", http.StatusBadRequest)
		}
		return
	}

	postID, err := strconv.ParseInt(r.FormValue("post_id"), 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор поста", http.StatusBadRequest)
		return
	}

	fileHeaders := r.MultipartForm.File["photos"]
	if len(fileHeaders) == 0 {
		WriteError(w, "Не переданы файлы", http.StatusBadRequest)
		return
	}

	captions := r.MultipartForm.Value["captions"]

	files := make([]service.PhotoUpload, 0, len(fileHeaders))
	for _, fh := range fileHeaders {
		file, err := fh.Open()
		if err != nil {
			WriteError(w, "Не удалось прочитать файл "+fh.Filename, http.StatusBadRequest)
			return
		}

		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			WriteError(w, "Не удалось прочитать файл "+fh.Filename, http.StatusBadRequest)
			return
		}

		files = append(files, service.PhotoUpload{
			FileName: fh.Filename,
			Data:     data,
			Size:     fh.Size,
		})
	}

	photos, err := h.PostService.AttachPhotos(r.Context(), postID, callerID, files, captions)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, photos, http.StatusCreated)
}

func (h *Handlers) DeletePhoto(w http.ResponseWriter, r *http.Request) {
	callerID := currentUserID(r)
	if callerID == 0 {
		WriteError(w, "Требуется авторизация", http.StatusUnauthorized)
		return
	}

	photoID, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		WriteError(w, "Неверный идентификатор фотографии", http.StatusBadRequest)
		return
	}

	if err := h.PostService.DetachPhoto(r.Context(), photoID, callerID); err != nil {
		WriteAppError(w, err)
		return
	}

	WriteSuccess(w, MessageResponse{Message: "Фотография удалена"}, http.StatusOK)
}
