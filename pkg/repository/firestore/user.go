package firestore

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/PrashantJha183/Feedback-backend/pkg/domain/model"
	"github.com/PrashantJha183/Feedback-backend/pkg/domain/types"
)

type userRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

type userDoc struct {
	EmployeeID        string `firestore:"employee_id"`
	Name              string `firestore:"name"`
	Email             string `firestore:"email"`
	PasswordDigest    string `firestore:"password_digest"`
	Role              string `firestore:"role"`
	ManagerEmployeeID string `firestore:"manager_employee_id"`
}

func toUserDoc(u *model.User) *userDoc {
	return &userDoc{
		EmployeeID:        u.EmployeeID,
		Name:              u.Name,
		Email:             u.Email,
		PasswordDigest:    u.PasswordDigest,
		Role:              u.Role.String(),
		ManagerEmployeeID: u.ManagerEmployeeID,
	}
}

func (d *userDoc) toModel() *model.User {
	return &model.User{
		EmployeeID:        d.EmployeeID,
		Name:              d.Name,
		Email:             d.Email,
		PasswordDigest:    d.PasswordDigest,
		Role:              types.Role(d.Role),
		ManagerEmployeeID: d.ManagerEmployeeID,
	}
}

func (r *userRepository) collection() *firestore.CollectionRef {
	return r.client.Collection(collectionName(r.collectionPrefix, CollectionUsers))
}

func (r *userRepository) Create(ctx context.Context, user *model.User) error {
	// Create fails if the document exists, which keeps employee IDs unique
	if _, err := r.collection().Doc(user.EmployeeID).Create(ctx, toUserDoc(user)); err != nil {
		if status.Code(err) == codes.AlreadyExists {
			return goerr.Wrap(ErrAlreadyExists, "user already exists", goerr.V("employee_id", user.EmployeeID))
		}
		return goerr.Wrap(err, "failed to create user", goerr.V("employee_id", user.EmployeeID))
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, employeeID string) (*model.User, error) {
	docSnap, err := r.collection().Doc(employeeID).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
		}
		return nil, goerr.Wrap(err, "failed to get user", goerr.V("employee_id", employeeID))
	}

	var d userDoc
	if err := docSnap.DataTo(&d); err != nil {
		return nil, goerr.Wrap(err, "failed to decode user", goerr.V("employee_id", employeeID))
	}
	return d.toModel(), nil
}

func (r *userRepository) Update(ctx context.Context, user *model.User) error {
	docRef := r.collection().Doc(user.EmployeeID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", user.EmployeeID))
		}
		return goerr.Wrap(err, "failed to check user existence", goerr.V("employee_id", user.EmployeeID))
	}

	if _, err := docRef.Set(ctx, toUserDoc(user)); err != nil {
		return goerr.Wrap(err, "failed to update user", goerr.V("employee_id", user.EmployeeID))
	}
	return nil
}

func (r *userRepository) Delete(ctx context.Context, employeeID string) error {
	docRef := r.collection().Doc(employeeID)

	if _, err := docRef.Get(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return goerr.Wrap(ErrNotFound, "user not found", goerr.V("employee_id", employeeID))
		}
		return goerr.Wrap(err, "failed to check user existence", goerr.V("employee_id", employeeID))
	}

	if _, err := docRef.Delete(ctx); err != nil {
		return goerr.Wrap(err, "failed to delete user", goerr.V("employee_id", employeeID))
	}
	return nil
}

func (r *userRepository) ListByRole(ctx context.Context, role types.Role) ([]*model.User, error) {
	return r.list(ctx, r.collection().Where("role", "==", role.String()))
}

func (r *userRepository) ListByManager(ctx context.Context, managerID string) ([]*model.User, error) {
	return r.list(ctx, r.collection().
		Where("role", "==", types.RoleEmployee.String()).
		Where("manager_employee_id", "==", managerID))
}

func (r *userRepository) CountByRole(ctx context.Context, role types.Role) (int, error) {
	count, err := countQuery(ctx, r.collection().Where("role", "==", role.String()))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to count users", goerr.V("role", role))
	}
	return count, nil
}

func (r *userRepository) list(ctx context.Context, q firestore.Query) ([]*model.User, error) {
	iter := q.OrderBy(firestore.DocumentID, firestore.Asc).Documents(ctx)
	defer iter.Stop()

	users := make([]*model.User, 0)
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate users")
		}

		var d userDoc
		if err := docSnap.DataTo(&d); err != nil {
			return nil, goerr.Wrap(err, "failed to decode user", goerr.V("doc_id", docSnap.Ref.ID))
		}
		users = append(users, d.toModel())
	}

	return users, nil
}
