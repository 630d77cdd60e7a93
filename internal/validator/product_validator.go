package validator

import (
	"mime/multipart"
	"path/filepath"
	"strconv"
	"strings"

	"app/internal/usecase"
)

// 画像1枚の上限（KB）
const maxImageKB = 2048

var allowedImageExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
}

type fieldErrors map[string][]string

func (fe fieldErrors) add(field string, msg string) {
	fe[field] = append(fe[field], msg)
}

// 商品作成のmultipart入力を検証して、検証済みの入力を返す。
// name必須(255以下)・price必須(0以上の数値)・images必須(jpeg/jpg/png, 2048KB以下)
func ValidateCreateProduct(form *multipart.Form) (usecase.CreateProductInput, error) {
	fe := fieldErrors{}

	name := formValue(form, "name")
	if name == "" {
		fe.add("name", "name is required")
	} else if len(name) > 255 {
		fe.add("name", "name must be 255 characters or less")
	}

	var price float64
	if raw, present := formValueIfPresent(form, "price"); !present || raw == "" {
		fe.add("price", "price is required")
	} else if p, err := strconv.ParseFloat(raw, 64); err != nil {
		fe.add("price", "price must be a number")
	} else if p < 0 {
		fe.add("price", "price must be 0 or more")
	} else {
		price = p
	}

	images := formFiles(form)
	if len(images) == 0 {
		fe.add("images", "images are required")
	} else {
		validateImages(images, fe)
	}

	if len(fe) > 0 {
		return usecase.CreateProductInput{}, usecase.NewValidationError(fe)
	}

	return usecase.CreateProductInput{
		Name:   name,
		Price:  price,
		Images: images,
	}, nil
}

// 商品更新のmultipart入力を検証する。name/priceは任意、imagesも任意
func ValidateUpdateProduct(form *multipart.Form) (usecase.UpdateProductInput, error) {
	fe := fieldErrors{}
	in := usecase.UpdateProductInput{}

	if name, present := formValueIfPresent(form, "name"); present {
		if name == "" {
			fe.add("name", "name is required")
		} else if len(name) > 255 {
			fe.add("name", "name must be 255 characters or less")
		} else {
			in.Name = &name
		}
	}

	if raw, present := formValueIfPresent(form, "price"); present {
		p, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			fe.add("price", "price must be a number")
		} else if p < 0 {
			fe.add("price", "price must be 0 or more")
		} else {
			in.Price = &p
		}
	}

	if images := formFiles(form); len(images) > 0 {
		validateImages(images, fe)
		in.Images = images
	}

	if len(fe) > 0 {
		return usecase.UpdateProductInput{}, usecase.NewValidationError(fe)
	}

	return in, nil
}

// カート追加のJSON入力を検証する。
// 商品の存在チェックはDBが要るのでusecase側で行う
func ValidateAddCart(productID *int64, quantity *int64) (usecase.AddCartInput, error) {
	fe := fieldErrors{}

	if productID == nil {
		fe.add("product_id", "product_id is required")
	}
	if quantity == nil {
		fe.add("quantity", "quantity is required")
	} else if *quantity < 1 {
		fe.add("quantity", "quantity must be at least 1")
	}

	if len(fe) > 0 {
		return usecase.AddCartInput{}, usecase.NewValidationError(fe)
	}

	return usecase.AddCartInput{
		ProductID: *productID,
		Quantity:  *quantity,
	}, nil
}

func validateImages(images []*multipart.FileHeader, fe fieldErrors) {
	for _, f := range images {
		ext := strings.ToLower(filepath.Ext(f.Filename))
		if !allowedImageExts[ext] {
			fe.add("images", "images must be jpeg, jpg or png files")
			return
		}
		if f.Size > maxImageKB*1024 {
			fe.add("images", "each image must be 2048 KB or less")
			return
		}
	}
}

func formValue(form *multipart.Form, key string) string {
	v, _ := formValueIfPresent(form, key)
	return v
}

func formValueIfPresent(form *multipart.Form, key string) (string, bool) {
	if form == nil {
		return "", false
	}
	vs, ok := form.Value[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[0]), true
}

// Laravel由来のクライアントに合わせて images と images[] の両方を受ける
func formFiles(form *multipart.Form) []*multipart.FileHeader {
	if form == nil {
		return nil
	}
	if fs, ok := form.File["images[]"]; ok && len(fs) > 0 {
		return fs
	}
	return form.File["images"]
}
