package validators

type ResetCompanyRequest struct {
	CompanyName string `json:"company_name" validate:"required,entity_name,max=100"`
}

type SetTodayRequest struct {
	Today string `json:"today" validate:"required,iso_date"`
}

type CreateCustomerRequest struct {
	Name string `json:"name" validate:"required,entity_name,max=100"`
}

type CreateCategoryRequest struct {
	Name string `json:"name" validate:"required,entity_name,max=50"`
}

type CreateCarRequest struct {
	Model      string `json:"model" validate:"required,entity_name,max=50"`
	Color      string `json:"color" validate:"required,min=3,max=30,car_color"`
	CategoryID int    `json:"category_id" validate:"required,min=1"`
}

func ValidateResetCompany(req *ResetCompanyRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateSetToday(req *SetTodayRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCreateCustomer(req *CreateCustomerRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCreateCategory(req *CreateCategoryRequest) ValidationErrors {
	return ValidateStruct(req)
}

func ValidateCreateCar(req *CreateCarRequest) ValidationErrors {
	return ValidateStruct(req)
}
